// Package postal resolves Japanese postal codes into addresses using
// yubinbango-format data files, one JSONP file per three-digit prefix.
//
// Client fetches and caches prefix files (in memory by default, or in redis
// through RedisCache). Lookup adapts a Client to the orchestrator's postal
// autofill hook, and the handler serves lookups as JSON for browser code:
//
//	GET /api/postal-codes?code=1000001
//
// The handler responds to GET and HEAD requests only.
package postal
