package errors

const (
	CodeParseFailure      = "PARSE_FAILURE"
	CodeUnknownRegion     = "UNKNOWN_REGION"
	CodeEmptyCoverage     = "EMPTY_COVERAGE"
	CodeProjectionFailure = "PROJECTION_FAILURE"
	CodeZeroArea          = "ZERO_AREA"
)

var (
	ErrParseFailure = New(
		CodeParseFailure,
		"Track file could not be decoded",
	)

	ErrUnknownRegion = New(
		CodeUnknownRegion,
		"Region is not present in the registry",
	)

	ErrEmptyCoverage = New(
		CodeEmptyCoverage,
		"No points attributable to the region",
	)

	ErrProjectionFailure = New(
		CodeProjectionFailure,
		"Coordinate reference system is unrecognised or incompatible",
	)

	ErrZeroArea = New(
		CodeZeroArea,
		"Region area is zero or the region has no area semantics",
	)
)

// ParseFailure wraps a per-file decode error.
func ParseFailure(path string, err error) *AppError {
	return &AppError{
		Code:    CodeParseFailure,
		Message: ErrParseFailure.Message,
		Unit:    path,
		Err:     err,
	}
}

// UnknownRegion reports a region name absent from the registry.
func UnknownRegion(name string) *AppError {
	return &AppError{
		Code:    CodeUnknownRegion,
		Message: ErrUnknownRegion.Message,
		Unit:    name,
	}
}

// EmptyCoverage reports a region with no attributable points after filtering.
func EmptyCoverage(region string) *AppError {
	return &AppError{
		Code:    CodeEmptyCoverage,
		Message: ErrEmptyCoverage.Message,
		Unit:    region,
	}
}

// ProjectionFailure reports an unrecognised or failing CRS transform.
func ProjectionFailure(crs string, err error) *AppError {
	return &AppError{
		Code:    CodeProjectionFailure,
		Message: ErrProjectionFailure.Message,
		Unit:    crs,
		Err:     err,
	}
}

// ZeroArea reports a metric computation against a zero or undefined area.
func ZeroArea(region string) *AppError {
	return &AppError{
		Code:    CodeZeroArea,
		Message: ErrZeroArea.Message,
		Unit:    region,
	}
}
