package domain

// CheckStatus - итог проверки места на "регион, а не точку"
type CheckStatus string

const (
	CheckStatusOK                 CheckStatus = "ok"
	CheckStatusRequestFailed      CheckStatus = "request_failed"
	CheckStatusNonSuccessStatus   CheckStatus = "non_success_status"
	CheckStatusWrongResultCount   CheckStatus = "wrong_result_count"
	CheckStatusMissingGeometry    CheckStatus = "missing_geometry"
	CheckStatusDisallowedGeometry CheckStatus = "disallowed_geometry"
)

// CheckReport - результат проверки одного места
type CheckReport struct {
	Place        string      `json:"place"`
	Status       CheckStatus `json:"status"`
	GeometryType string      `json:"geometry_type,omitempty"`
	Detail       string      `json:"detail,omitempty"`
}

// OK - место резолвится в полигон
func (r CheckReport) OK() bool {
	return r.Status == CheckStatusOK
}
