package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

type keyType string

const adminSubjectKey keyType = "adminSubject"

// ctxWithAdmin records the subject of a verified admin token
func ctxWithAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminSubjectKey, subject)
}

// ctxGetAdmin returns the admin subject, if the request passed authentication
func ctxGetAdmin(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(adminSubjectKey).(string)
	return subject, ok
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
