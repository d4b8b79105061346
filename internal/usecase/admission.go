package usecase

// PrintQueueCapacity is the system-wide number of concurrent in-flight print
// slots. The cap is global, not per customer.
const PrintQueueCapacity = 5

// CanAccept reports whether a new order may enter the print queue given the
// current in-flight count. Rejection is hard: callers surface a queue-full
// condition instead of buffering the request.
func CanAccept(inFlight int) bool {
	return inFlight < PrintQueueCapacity
}
