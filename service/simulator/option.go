package simulator

// Option configures the simulator service
type Option func(s *Service)

// WithParallel replays workers concurrently, one goroutine per worker.
func WithParallel(parallel bool) Option {
	return func(s *Service) {
		s.parallel = parallel
	}
}
