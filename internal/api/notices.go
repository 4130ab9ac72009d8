// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package api

import (
	"net/http"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/notify"
	requestutil "github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/request"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/respond"
)

// NewNoticesHandler creates the GET /api/v1/notices handler.
//
// The admin UI polls this to show the transient success and error banners
// raised by recent mutations. Notices carry operational detail, so only
// authenticated sessions may read them.
func NewNoticesHandler(center *notify.Center) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if _, err := requestutil.RequiredSession(request); err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, center.Active())
	}
}
