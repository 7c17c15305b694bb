package dto

type UploadResponse struct {
	OK        bool   `json:"ok"`
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
}

type PresignResponse struct {
	URL string `json:"url"`
}
