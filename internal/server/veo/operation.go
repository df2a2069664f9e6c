package veo

// Operation is a long-running generation job as reported by the provider.
type Operation struct {
	Name     string             `json:"name"`
	Done     bool               `json:"done"`
	Error    *Status            `json:"error,omitempty"`
	Response *OperationResponse `json:"response,omitempty"`
}

// Status is the provider's error payload for a failed job.
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type OperationResponse struct {
	GenerateVideoResponse GenerateVideoResponse `json:"generateVideoResponse"`
}

type GenerateVideoResponse struct {
	GeneratedSamples []GeneratedSample `json:"generatedSamples"`
}

type GeneratedSample struct {
	Video Video `json:"video"`
}

type Video struct {
	URI string `json:"uri"`
}

// VideoURI returns the first generated sample's URI, or "" when the job has
// no result yet.
func (o *Operation) VideoURI() string {
	if o == nil || o.Response == nil {
		return ""
	}
	samples := o.Response.GenerateVideoResponse.GeneratedSamples
	if len(samples) == 0 {
		return ""
	}
	return samples[0].Video.URI
}

type instance struct {
	Prompt string `json:"prompt"`
}

type parameters struct {
	AspectRatio    string `json:"aspectRatio"`
	Resolution     string `json:"resolution"`
	NumberOfVideos int    `json:"numberOfVideos"`
}

type predictRequest struct {
	Instances  []instance `json:"instances"`
	Parameters parameters `json:"parameters"`
}

// Fixed generation parameters: one vertical 720p video.
const (
	AspectRatio    = "9:16"
	Resolution     = "720p"
	NumberOfVideos = 1
)

func newPredictRequest(prompt string) predictRequest {
	return predictRequest{
		Instances: []instance{{Prompt: prompt}},
		Parameters: parameters{
			AspectRatio:    AspectRatio,
			Resolution:     Resolution,
			NumberOfVideos: NumberOfVideos,
		},
	}
}
