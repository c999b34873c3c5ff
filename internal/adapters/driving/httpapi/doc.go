// Package httpapi serves the JSON API used by the dashboard front end.
//
// Routes:
//
//	GET /api/trends/             ranked terms             (days, limit)
//	GET /api/trending-cuisines/  ranked cultural origins  (days, limit)
//	GET /api/search/             ranked posts             (q, days, limit, term)
//	GET /api/posts/              newest posts             (limit)
//	GET /health                  liveness probe
//
// Every response is JSON. Requests are access-logged through logrus.
package httpapi
