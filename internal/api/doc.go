// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package api provides the HTTP interface of the coverage dashboard.

Routes are served by a chi router. Every response uses the APIResponse
envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "...", "request_id": "..."}}

# Endpoints

Reads (all under /api/v1):

	GET  /world                          country scores, world scope
	GET  /countries/{id}/regions         region scores and spread for one country
	GET  /countries/{id}/top-orgs?k=     organizations ranked by project count
	GET  /regions/{id}                   region drill-down
	GET  /recommendations/urgency        ?top_n= &scenario= &scenario_countries=
	GET  /recommendations/deployment     ?budget= &aid_types= &countries= &scenario=
	GET  /recommendations/coordination   ?limit= &same_country= &scenario=
	GET  /scenarios                      what-if presets
	GET  /integrity                      referential integrity report

Writes:

	PUT    /dataset        replace the dataset
	PUT    /edges/{id}     create or replace an aid edge
	DELETE /edges/{id}     remove an aid edge
	PUT    /regions/{id}   create or replace a region

Every write answers with the new dataset_version. Connected websocket clients
(GET /api/v1/ws) are told to refetch once the change has been processed.

Operational: /api/v1/health/live, /api/v1/health/ready and /metrics.

# Middleware

Request id, real IP, structured access log, panic recovery and CORS apply to
every route. The data routes add IP rate limiting via go-chi/httprate,
Prometheus request metrics and gzip compression; writes have a stricter limit.
*/
package api
