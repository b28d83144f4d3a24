package constant

import "fmt"

type AppError struct {
	ErrorCode string
	Message   string
	Params    map[string]interface{}
}

func (e AppError) Code() string  { return e.ErrorCode }
func (e AppError) Error() string { return e.Message }

type UnauthorizedError struct{ AppError }

func NewUnauthorizedError(code, message string, params map[string]interface{}) *UnauthorizedError {
	return &UnauthorizedError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

type BadRequestError struct{ AppError }

func NewBadRequestError(code, message string, params map[string]interface{}) *BadRequestError {
	return &BadRequestError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

type NotFoundError struct{ AppError }

func NewNotFoundError(code, message string, params map[string]interface{}) *NotFoundError {
	return &NotFoundError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

type ConflictError struct{ AppError }

func NewConflictError(code, message string, params map[string]interface{}) *ConflictError {
	return &ConflictError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

type InternalServerError struct{ AppError }

func NewInternalServerError(code, message string, params map[string]interface{}) *InternalServerError {
	return &InternalServerError{
		AppError: AppError{
			ErrorCode: code,
			Message:   message,
			Params:    params,
		},
	}
}

var (
	NO_VITALS_PROVIDED = NewBadRequestError("no_vitals_provided", "At least one vital sign must be provided", nil)

	INVALID_BLOOD_PRESSURE = NewBadRequestError("invalid_blood_pressure", "Systolic BP must be greater than diastolic BP", nil)

	NO_PREDICTIONS_AVAILABLE = NewConflictError("no_predictions_available", "No predictor could produce a score for the reading", nil)

	INVALID_POLICY = NewBadRequestError("invalid_policy", "Critical threshold must be greater than warning threshold", nil)
)

func UNKNOWN_PATIENT(code string) *BadRequestError {
	return NewBadRequestError("unknown_patient", fmt.Sprintf("No patient is found for '%v'", code),
		map[string]interface{}{"Code": code})
}

func OUT_OF_RANGE(field VitalField, value float64) *BadRequestError {
	r := VitalRanges[field]
	return NewBadRequestError("out_of_range", fmt.Sprintf("%v must be between %v and %v, got %v", field, r.Min, r.Max, value),
		map[string]interface{}{"Field": string(field), "Value": value})
}

func DB_OPERATION_ERROR(e error) *InternalServerError {
	return NewInternalServerError("db_operation_failed", e.Error(), map[string]interface{}{})
}

func INFLUXDB_OPERATION_ERROR(e error) *InternalServerError {
	return NewInternalServerError("influxdb_operation_failed", e.Error(), map[string]interface{}{})
}
