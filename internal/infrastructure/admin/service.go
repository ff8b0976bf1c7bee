// Package admin implements the read-only gRPC SessionIntrospection facade
// (§8.4): ListModels, ListMedia, and HealthCheck over the in-memory
// session.Store. It is reached by operators with a thin client or grpcurl,
// never by an LLM agent — it is not part of the MCP tool surface (C7) and
// never mutates session state. Grounded on the teacher's generic gRPC
// server skeleton (internal/interfaces/grpc/server.go), condensed to the
// single service this module actually exposes. There is no protoc toolchain
// available to generate message/stub code, so the ServiceDesc below is
// hand-authored the way protoc-gen-go-grpc would, against plain Go structs
// carried over the wire by jsonCodec rather than protobuf.
package admin

import (
	"context"
	"sort"

	"google.golang.org/grpc"

	"github.com/jplfaria/gem-flux-mcp/internal/app/session"
)

// ListModelsRequest is the (empty) SessionIntrospection/ListModels request.
type ListModelsRequest struct{}

// ModelSummary is the introspection-facing view of a stored model — a
// subset of session.StoredModel's fields, never the model.Handle itself.
type ModelSummary struct {
	ID          string `json:"id"`
	Template    string `json:"template"`
	IsDraft     bool   `json:"is_draft"`
	IsGapfilled bool   `json:"is_gapfilled"`
}

// ListModelsResponse is the SessionIntrospection/ListModels response.
type ListModelsResponse struct {
	Models []ModelSummary `json:"models"`
}

// ListMediaRequest is the (empty) SessionIntrospection/ListMedia request.
type ListMediaRequest struct{}

// MediaSummary is the introspection-facing view of a stored medium.
type MediaSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Predefined bool   `json:"predefined"`
}

// ListMediaResponse is the SessionIntrospection/ListMedia response.
type ListMediaResponse struct {
	Media []MediaSummary `json:"media"`
}

// HealthCheckRequest is the (empty) SessionIntrospection/HealthCheck request.
type HealthCheckRequest struct{}

// HealthCheckResponse reports catalog occupancy alongside a serving status,
// distinct from the standard grpc.health.v1 service also registered on the
// same server (that one answers process-level liveness; this one answers
// "how full is the catalog").
type HealthCheckResponse struct {
	Status     string `json:"status"`
	ModelCount int    `json:"model_count"`
	MediaCount int    `json:"media_count"`
}

// sessionIntrospectionServer is the interface grpc.ServiceDesc's HandlerType
// asserts against; SessionIntrospectionServer below is its only
// implementation.
type sessionIntrospectionServer interface {
	ListModels(context.Context, *ListModelsRequest) (*ListModelsResponse, error)
	ListMedia(context.Context, *ListMediaRequest) (*ListMediaResponse, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
}

// SessionIntrospectionServer implements the SessionIntrospection service
// over a session.Store. Every method is a read: it takes the store's own
// mutex only for the duration of a ListModels/ListMedia call and never
// holds it across an RPC boundary.
type SessionIntrospectionServer struct {
	store *session.Store
}

// NewSessionIntrospectionServer constructs a SessionIntrospectionServer
// over store.
func NewSessionIntrospectionServer(store *session.Store) *SessionIntrospectionServer {
	return &SessionIntrospectionServer{store: store}
}

var _ sessionIntrospectionServer = (*SessionIntrospectionServer)(nil)

// ListModels reports every model currently held in the catalog, sorted by
// id (session.Store.ListModels already sorts; this just projects fields).
func (s *SessionIntrospectionServer) ListModels(_ context.Context, _ *ListModelsRequest) (*ListModelsResponse, error) {
	stored := s.store.ListModels()
	out := make([]ModelSummary, 0, len(stored))
	for _, sm := range stored {
		out = append(out, ModelSummary{
			ID:          sm.ID,
			Template:    sm.Metadata.Template,
			IsDraft:     sm.Metadata.IsDraft,
			IsGapfilled: sm.Metadata.IsGapfilled,
		})
	}
	return &ListModelsResponse{Models: out}, nil
}

// ListMedia reports every medium currently held in the catalog, predefined
// and custom alike.
func (s *SessionIntrospectionServer) ListMedia(_ context.Context, _ *ListMediaRequest) (*ListMediaResponse, error) {
	stored := s.store.ListMedia()
	out := make([]MediaSummary, 0, len(stored))
	for _, sm := range stored {
		name := ""
		if sm.Media != nil {
			name = sm.Media.Name
		}
		out = append(out, MediaSummary{ID: sm.ID, Name: name, Predefined: sm.Predefined})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return &ListMediaResponse{Media: out}, nil
}

// HealthCheck reports catalog occupancy. Always returns "SERVING" — the
// store has no degraded state — and exists mainly so operators can
// distinguish "server up, catalog empty" from "server unreachable".
func (s *SessionIntrospectionServer) HealthCheck(_ context.Context, _ *HealthCheckRequest) (*HealthCheckResponse, error) {
	return &HealthCheckResponse{
		Status:     "SERVING",
		ModelCount: len(s.store.ListModels()),
		MediaCount: len(s.store.ListMedia()),
	}, nil
}

func listModelsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListModelsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(sessionIntrospectionServer).ListModels(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/gemfluxmcp.admin.SessionIntrospection/ListModels"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(sessionIntrospectionServer).ListModels(ctx, req.(*ListModelsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listMediaHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListMediaRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(sessionIntrospectionServer).ListMedia(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/gemfluxmcp.admin.SessionIntrospection/ListMedia"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(sessionIntrospectionServer).ListMedia(ctx, req.(*ListMediaRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func healthCheckHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(HealthCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(sessionIntrospectionServer).HealthCheck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/gemfluxmcp.admin.SessionIntrospection/HealthCheck"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(sessionIntrospectionServer).HealthCheck(ctx, req.(*HealthCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// sessionIntrospectionServiceDesc is the hand-authored equivalent of what
// protoc-gen-go-grpc would emit for a SessionIntrospection service
// definition. grpc.Server.RegisterService dispatches incoming calls to
// these Methods by name; codec selection (jsonCodec, in codec.go) happens
// beneath this layer based on the call's negotiated content-subtype.
var sessionIntrospectionServiceDesc = grpc.ServiceDesc{
	ServiceName: "gemfluxmcp.admin.SessionIntrospection",
	HandlerType: (*sessionIntrospectionServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListModels", Handler: listModelsHandler},
		{MethodName: "ListMedia", Handler: listMediaHandler},
		{MethodName: "HealthCheck", Handler: healthCheckHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/infrastructure/admin/service.go",
}
