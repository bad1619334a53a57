package grpc

import (
	"context"
	"errors"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/arceusss10/sports-news-dashboard/internal/application"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

const serviceName = "sportsnews.payout.v1.PayoutInternalService"

type PayoutInternalService interface {
	GetRates(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ComputeTotal(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ComputePerAuthor(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// PayoutInternalServer answers trusted in-cluster callers. They read with
// viewer rights and can never change rates.
type PayoutInternalServer struct {
	service *application.Service
	actor   domain.Actor
}

func NewPayoutInternalServer(service *application.Service) *PayoutInternalServer {
	return &PayoutInternalServer{
		service: service,
		actor:   domain.Actor{ID: "grpc-internal", Role: domain.RoleUser},
	}
}

func Register(server grpc.ServiceRegistrar, svc PayoutInternalService) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*PayoutInternalService)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetRates",
				Handler:    unaryHandler("GetRates", func() *emptypb.Empty { return &emptypb.Empty{} }, svc.GetRates),
			},
			{
				MethodName: "ComputeTotal",
				Handler:    unaryHandler("ComputeTotal", func() *structpb.Struct { return &structpb.Struct{} }, svc.ComputeTotal),
			},
			{
				MethodName: "ComputePerAuthor",
				Handler:    unaryHandler("ComputePerAuthor", func() *structpb.Struct { return &structpb.Struct{} }, svc.ComputePerAuthor),
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "payout/v1/payout_internal.proto",
	}, svc)
}

func (s *PayoutInternalServer) GetRates(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	view, err := s.service.GetRates(ctx, s.actor)
	if err != nil {
		return nil, toStatus(err)
	}
	return buildStruct(map[string]any{
		"scope":        view.Scope,
		"article_rate": view.Rates.ArticleRate,
		"blog_rate":    view.Rates.BlogRate,
	})
}

func (s *PayoutInternalServer) ComputeTotal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	articles, err := countField(req, "articles")
	if err != nil {
		return nil, err
	}
	blogs, err := countField(req, "blogs")
	if err != nil {
		return nil, err
	}
	breakdown, err := s.service.ComputeTotal(ctx, s.actor, domain.Counts{Articles: articles, Blogs: blogs})
	if err != nil {
		return nil, toStatus(err)
	}
	return buildStruct(map[string]any{
		"articles":      breakdown.Articles,
		"blogs":         breakdown.Blogs,
		"article_total": domain.FormatAmount(breakdown.ArticleTotal),
		"blog_total":    domain.FormatAmount(breakdown.BlogTotal),
		"total_payout":  domain.FormatAmount(breakdown.TotalPayout),
	})
}

// ComputePerAuthor expects {"items":[{"id","author_id","kind"}...]}.
func (s *PayoutInternalServer) ComputePerAuthor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw := req.GetFields()["items"].GetListValue().GetValues()
	items := make([]domain.ContentItem, 0, len(raw))
	for _, v := range raw {
		fields := v.GetStructValue().GetFields()
		kind, err := domain.ParseContentKind(fields["kind"].GetStringValue())
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "item kind must be article or blog")
		}
		items = append(items, domain.ContentItem{
			ID:       fields["id"].GetStringValue(),
			AuthorID: fields["author_id"].GetStringValue(),
			Kind:     kind,
		})
	}
	lines, err := s.service.ComputePerAuthor(ctx, s.actor, items)
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]any, 0, len(lines))
	for _, line := range lines {
		out = append(out, map[string]any{
			"author_id":     line.AuthorID,
			"article_count": line.ArticleCount,
			"blog_count":    line.BlogCount,
			"total_payout":  domain.FormatAmount(line.TotalPayout),
		})
	}
	return buildStruct(map[string]any{"lines": out})
}

func countField(req *structpb.Struct, name string) (int, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, nil
	}
	n := v.GetNumberValue()
	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a non-negative integer", name)
	}
	return int(n), nil
}

func buildStruct(fields map[string]any) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "build response: %v", err)
	}
	return resp, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, domain.ErrRejected):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return status.Error(codes.Unavailable, "upstream unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

type unaryMethod = func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error)

func unaryHandler[Req proto.Message](method string, newReq func() Req, call func(context.Context, Req) (*structpb.Struct, error)) unaryMethod {
	fullMethod := "/" + serviceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		req := newReq()
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, req)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(Req)
			if !ok {
				return nil, status.Error(codes.InvalidArgument, "invalid request type")
			}
			return call(ctx, typed)
		})
	}
}
