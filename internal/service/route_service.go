package service

import (
	"strings"

	"streetmix-be/internal/dto"
	"streetmix-be/pkg/pageurl"
	"streetmix-be/pkg/route"
)

type IRouteService interface {
	Resolve(path string) *dto.ResolveRouteResponse
	BuildPageURL(req *dto.BuildPageURLRequest) *dto.PageURLResponse
	Resolver() *route.Resolver
	Builder() *pageurl.Builder
}

type routeService struct {
	resolver *route.Resolver
	builder  *pageurl.Builder
}

func NewRouteService(tokens route.Tokens) IRouteService {
	resolver := route.NewResolver(tokens)
	return &routeService{
		resolver: resolver,
		builder:  pageurl.NewBuilder(resolver.Tokens(), nil),
	}
}

func (s *routeService) Resolve(path string) *dto.ResolveRouteResponse {
	path, _, _ = strings.Cut(path, "?")
	res := s.resolver.Resolve(path)
	return &dto.ResolveRouteResponse{
		Path:    path,
		Mode:    res.Mode,
		Context: res.Context,
		Rule:    s.resolver.RuleName(path),
	}
}

func (s *routeService) BuildPageURL(req *dto.BuildPageURLRequest) *dto.PageURLResponse {
	state := pageurl.State{Street: req.Street, GalleryUserID: req.GalleryUserId}
	return &dto.PageURLResponse{URL: s.builder.Build(req.ForceGallery, state, req.Debug)}
}

func (s *routeService) Resolver() *route.Resolver {
	return s.resolver
}

func (s *routeService) Builder() *pageurl.Builder {
	return s.builder
}
