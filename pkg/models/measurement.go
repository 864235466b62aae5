package models

// RGB is an 8-bit-per-channel color triple.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL holds hue in degrees and saturation/lightness as percentages.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// LAB is a CIELAB triple: L* lightness plus a*/b* chroma axes.
type LAB struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// ColorSample is one measured color in whichever spaces the extraction
// stage produced. Any of the representations may be absent.
type ColorSample struct {
	Hex string `json:"hex,omitempty"`
	RGB *RGB   `json:"rgb,omitempty"`
	HSL *HSL   `json:"hsl,omitempty"`
	LAB *LAB   `json:"lab,omitempty"`
}

// FaceRatios are normalized face-outline proportions.
type FaceRatios struct {
	WidthHeight *float64 `json:"widthHeight,omitempty"`
	Forehead    *float64 `json:"forehead,omitempty"`
	Cheekbone   *float64 `json:"cheekbone,omitempty"`
	Jaw         *float64 `json:"jaw,omitempty"`
	Chin        *float64 `json:"chin,omitempty"`
}

// ContrastMetrics are perceptual distances between measured regions.
type ContrastMetrics struct {
	SkinHair *float64 `json:"skinHair,omitempty"`
	SkinEye  *float64 `json:"skinEye,omitempty"`
	Overall  *float64 `json:"overall,omitempty"`
}

// FaceAnalysis carries pre-extracted facial color measurements.
// Error is set by the client-side extraction stage when it could not
// produce usable measurements; such payloads must be rejected.
type FaceAnalysis struct {
	Skin       *ColorSample     `json:"skin,omitempty"`
	Hair       *ColorSample     `json:"hair,omitempty"`
	Eye        *ColorSample     `json:"eye,omitempty"`
	Eyebrow    *ColorSample     `json:"eyebrow,omitempty"`
	Lip        *ColorSample     `json:"lip,omitempty"`
	Neck       *ColorSample     `json:"neck,omitempty"`
	Background *ColorSample     `json:"background,omitempty"`
	Ratios     *FaceRatios      `json:"ratios,omitempty"`
	Contrast   *ContrastMetrics `json:"contrast,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// BodyAnalysis carries optional body proportion measurements.
type BodyAnalysis struct {
	ShoulderHip *float64 `json:"shoulderHip,omitempty"`
	WaistHip    *float64 `json:"waistHip,omitempty"`
	LegTorso    *float64 `json:"legTorso,omitempty"`
}

// DiagnoseRequest is the request body of POST /diagnose. The image
// fields and the measurement fields are mutually exclusive shapes,
// selected by the deployment mode.
type DiagnoseRequest struct {
	// Image mode: base64-encoded photos.
	Image        string `json:"image,omitempty"`
	MimeType     string `json:"mimeType,omitempty"`
	BodyImage    string `json:"bodyImage,omitempty"`
	BodyMimeType string `json:"bodyMimeType,omitempty"`

	// Data mode: pre-extracted measurements.
	FaceAnalysis *FaceAnalysis `json:"faceAnalysis,omitempty"`
	BodyAnalysis *BodyAnalysis `json:"bodyAnalysis,omitempty"`

	Age      *int   `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Lang     string `json:"lang,omitempty"`
}
