package balancer

// Option configures the balancer service
type Option func(s *Service)

// WithArrivalValidation toggles the non-decreasing arrival check. When
// disabled, out of order jobs are accepted and simulated completion times are
// not meaningful.
func WithArrivalValidation(enabled bool) Option {
	return func(s *Service) {
		s.validateArrival = enabled
	}
}
