package dto

type PointResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type ListPointsResponse struct {
	Points []PointResponse `json:"points"`
}
