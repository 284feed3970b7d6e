package controllers

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoPermission      = &CustomError{"you don't have permission for this action"}
	ErrTableNotFound     = &CustomError{"table not found"}
	ErrInvalidTransition = &CustomError{"invalid status transition"}
	ErrNothingToClose    = &CustomError{"no open orders on this table"}
	ErrUnassignedItems   = &CustomError{"there are items without participants assigned"}
)
