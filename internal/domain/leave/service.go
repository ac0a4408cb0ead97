package leave

import "context"

type Service interface {
	CreateType(ctx context.Context, req CreateTypeRequest) (TypeResponse, error)
	ListTypes(ctx context.Context) ([]TypeResponse, error)

	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)
	Approve(ctx context.Context, requestID string) (RequestResponse, error)
	Reject(ctx context.Context, requestID string) (RequestResponse, error)
	Cancel(ctx context.Context, requestID string) (RequestResponse, error)
	GetByID(ctx context.Context, requestID string) (RequestResponse, error)
	List(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)
}
