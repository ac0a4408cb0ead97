package regularization

import "context"

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (Response, error)
	Resolve(ctx context.Context, req ResolveRequest) (Response, error)
	GetByID(ctx context.Context, id string) (Response, error)
	List(ctx context.Context, filter Filter) (ListResponse, error)
}
