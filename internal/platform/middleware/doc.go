// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP decorators shared by every route.

The server mounts them outermost first:

	RequestID -> StructuredLogger -> ErrorDetail -> PanicRecovery -> CORS -> Metrics

RequireToken is mounted per route group and is the only one that can
short-circuit a request with a 401.
*/
package middleware
