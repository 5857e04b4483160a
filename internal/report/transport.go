package report

// SubmitReportRequest is the multipart form posted by the client. Photos
// travel as file parts alongside these fields.
type SubmitReportRequest struct {
	IssueType   string `form:"issueType" validate:"required,max=100"`
	Description string `form:"description" validate:"required,max=4000"`

	Address    string   `form:"address" validate:"max=500"`
	Locality   string   `form:"locality" validate:"required,max=200"`
	City       string   `form:"city" validate:"max=200"`
	State      string   `form:"state" validate:"max=200"`
	PostalCode string   `form:"postalCode" validate:"omitempty,len=6,numeric"`
	Lat        *float64 `form:"lat" validate:"omitempty,latitude"`
	Lng        *float64 `form:"lng" validate:"omitempty,longitude"`
	PlaceID    string   `form:"placeId" validate:"max=200"`
	Source     string   `form:"source" validate:"omitempty,oneof=manual search browser"`

	IsAnonymous  bool   `form:"isAnonymous"`
	ContactPhone string `form:"contactPhone" validate:"max=30"`
}

// SubmitReportResponse returns the new record identifier.
type SubmitReportResponse struct {
	ID string `json:"id"`
}

// ReportResponse is the read model for a stored report.
type ReportResponse struct {
	ID          string   `json:"id"`
	IssueType   string   `json:"issueType"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Locality    string   `json:"locality"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	PostalCode  string   `json:"postalCode"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	PhotoURLs   []string `json:"photoUrls"`
	IsAnonymous bool     `json:"isAnonymous"`
}

func toReportResponse(rep Report) ReportResponse {
	return ReportResponse{
		ID:          rep.ID.String(),
		IssueType:   rep.IssueType,
		Description: rep.Description,
		Address:     rep.Address,
		Locality:    rep.Locality,
		City:        rep.City,
		State:       rep.State,
		PostalCode:  rep.PostalCode,
		Lat:         rep.Lat,
		Lng:         rep.Lng,
		PhotoURLs:   rep.PhotoURLs,
		IsAnonymous: rep.IsAnonymous,
	}
}
