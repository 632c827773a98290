// Package apperrors holds the error types shared by the study runner and
// the mapping from errors to process exit codes.
//
// Configuration and validation problems, rejected prompt answers, failed
// fits and timeouts each have their own type so callers can tell them apart
// with errors.As. Types that carry a cause implement Unwrap, and WrapError
// adds context with %w, so context.Canceled and context.DeadlineExceeded
// stay visible through any number of layers.
package apperrors
