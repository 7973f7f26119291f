package errors

var (
	ErrInvalidPlacesFile = New(
		"INVALID_PLACES_FILE",
		"Places file is missing or is not a valid JSON object",
	)

	ErrInvalidPlace = New(
		"INVALID_PLACE",
		"Place entry is invalid",
	)

	ErrTooFewPlaces = New(
		"TOO_FEW_PLACES",
		"List mode needs two or more places",
	)

	ErrUnknownMode = New(
		"UNKNOWN_MODE",
		"Unrecognized mode",
	)

	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Geocoder returned no result for the place",
	)

	ErrPlaceNotRegion = New(
		"PLACE_NOT_REGION",
		"Geocoded place is not a region polygon",
	)

	ErrNetworkUnavailable = New(
		"NETWORK_UNAVAILABLE",
		"Street network could not be retrieved",
	)

	ErrEmptyBearings = New(
		"EMPTY_BEARINGS",
		"Bearing collection is empty",
	)

	ErrInvalidSlices = New(
		"INVALID_SLICES",
		"Slice count must be a positive integer",
	)

	ErrBearingOutOfRange = New(
		"BEARING_OUT_OF_RANGE",
		"Bearing must lie in [0, 360]",
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
	)

	ErrRenderFailed = New(
		"RENDER_FAILED",
		"Image rendering failed",
	)
)
