package domain

// User is the single entity managed by the service.
type User struct {
	ID   int64
	Name string
	Age  int
}
