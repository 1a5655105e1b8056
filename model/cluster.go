package model

type ClusterResult struct {
	Labels       []int   `json:"labels"`
	ClusterCount int     `json:"cluster_count"`
	BIC          float64 `json:"bic"`
}
