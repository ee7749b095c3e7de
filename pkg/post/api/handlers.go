package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	. "stream/pkg/common"
	"stream/pkg/content"
	"stream/pkg/logger"
	"stream/pkg/post"
)

const pingTimeout = 2 * time.Second

type (
	PostService interface {
		List(context.Context) ([]*post.View, error)
		Get(context.Context, post.PostId) (*post.View, error)
		Create(context.Context, *post.View) (*post.View, error)
		Update(context.Context, post.PostId, *post.View) (*post.View, error)
		Delete(context.Context, post.PostId) (bool, error)
		Ping(context.Context) error
	}

	PostHandler struct {
		Service PostService
	}

	healthStatus struct {
		Status string `json:"status"`
	}
)

func NewPostHandler(s PostService) *PostHandler {
	return &PostHandler{
		Service: s,
	}
}

func (ph *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	views, err := ph.Service.List(r.Context())
	if err != nil {
		ph.writeErr(w, r, err, "failed loading posts")
		return
	}

	WriteRespJSON(w, views)
}

func (ph *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := postId(w, r)
	if !ok {
		return
	}

	view, err := ph.Service.Get(r.Context(), id)
	if err != nil {
		ph.writeErr(w, r, err, "failed loading post")
		return
	}

	WriteRespJSON(w, view)
}

func (ph *PostHandler) Add(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	view, ok := parseView(w, r)
	if !ok {
		return
	}

	created, err := ph.Service.Create(r.Context(), view)
	if err != nil {
		ph.writeErr(w, r, err, "failed adding post")
		return
	}

	w.WriteHeader(http.StatusOK)
	WriteRespJSON(w, created)
}

func (ph *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := postId(w, r)
	if !ok {
		return
	}
	view, ok := parseView(w, r)
	if !ok {
		return
	}

	updated, err := ph.Service.Update(r.Context(), id, view)
	if err != nil {
		ph.writeErr(w, r, err, "failed updating post")
		return
	}

	WriteRespJSON(w, updated)
}

func (ph *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := postId(w, r)
	if !ok {
		return
	}

	deleted, err := ph.Service.Delete(r.Context(), id)
	if err != nil {
		ph.writeErr(w, r, err, "removing post failed")
		return
	}

	WriteRespJSON(w, deleted)
}

// Health reports whether the storage answers a ping.
func (ph *PostHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := ph.Service.Ping(ctx); err != nil {
		logger.Log(r.Context()).Errorf("post/api: storage ping failed: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		WriteRespJSON(w, healthStatus{Status: "DOWN"})
		return
	}

	WriteRespJSON(w, healthStatus{Status: "UP"})
}

func postId(w http.ResponseWriter, r *http.Request) (post.PostId, bool) {
	raw := mux.Vars(r)["post_id"]
	id, err := post.ParsePostId(raw)
	if err != nil {
		logger.Log(r.Context()).Errorf("post/api: bad post id %q: %v", raw, err)
		WriteMsg(w, "post id must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func parseView(w http.ResponseWriter, r *http.Request) (*post.View, bool) {
	view := new(post.View)
	err := ParseReqBody(r.Body, view)
	if err == nil {
		return view, true
	}

	var vErr *post.ValidationError
	if errors.As(err, &vErr) {
		logger.Log(r.Context()).Infof("post/api: rejected post: %v", err)
		WriteValidationMsg(w, "post validation failed", vErr.Fields)
		return nil, false
	}

	logger.Log(r.Context()).Errorf("post/api: can't parse post from request body: %v", err)
	WriteMsg(w, "can't parse post", http.StatusBadRequest)
	return nil, false
}

func (ph *PostHandler) writeErr(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var (
		nfErr *post.NotFoundError
		vErr  *post.ValidationError
	)
	switch {
	case errors.As(err, &nfErr):
		WriteMsg(w, nfErr.Error(), http.StatusNotFound)
	case errors.Is(err, post.ErrNotFound):
		WriteMsg(w, "post not found", http.StatusNotFound)
	case errors.As(err, &vErr):
		WriteValidationMsg(w, "post validation failed", vErr.Fields)
	case content.IsMalformed(err):
		logger.Log(r.Context()).Errorf("post/api: data integrity fault: %v", err)
		WriteMsg(w, msg, http.StatusInternalServerError)
	default:
		logger.Log(r.Context()).Errorf("post/api: %s: %v", msg, err)
		WriteMsg(w, msg, http.StatusInternalServerError)
	}
}
