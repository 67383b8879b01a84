package staff

import "context"

type Repository interface {
	GetByStaffID(ctx context.Context, staffID string) (*Staff, error)
	Create(ctx context.Context, s *Staff) error
}
