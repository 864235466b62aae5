package prompting

import (
	"fmt"
	"strings"

	"palette_api/pkg/models"
)

// MediaPart is one binary attachment sent alongside the prompt in
// image mode.
type MediaPart struct {
	MIME string
	Data []byte
}

// Options are the caller-supplied demographics appended after the
// measurements.
type Options struct {
	Age    *int
	Gender string
	Lang   string
}

// DataPrompt renders the instruction template plus a transcription of
// every present measurement field. Transcription order is fixed (skin,
// hair, eye, eyebrow, lip, neck, background, proportions, contrast,
// body, demographics) so identical input yields a byte-identical
// prompt. Absent optional fields are omitted entirely.
func DataPrompt(face *models.FaceAnalysis, body *models.BodyAnalysis, opts Options) string {
	var b strings.Builder
	b.WriteString(DiagnosisPrompt())
	b.WriteString("\n\nMeasured data:\n")

	writeColor(&b, "Skin color", face.Skin)
	writeColor(&b, "Hair color", face.Hair)
	writeColor(&b, "Eye color", face.Eye)
	writeColor(&b, "Eyebrow color", face.Eyebrow)
	writeColor(&b, "Lip color", face.Lip)
	writeColor(&b, "Neck color", face.Neck)
	writeColor(&b, "Background color", face.Background)

	if r := face.Ratios; r != nil {
		writeRatio(&b, "Face width/height ratio", r.WidthHeight)
		writeRatio(&b, "Forehead width ratio", r.Forehead)
		writeRatio(&b, "Cheekbone width ratio", r.Cheekbone)
		writeRatio(&b, "Jaw width ratio", r.Jaw)
		writeRatio(&b, "Chin length ratio", r.Chin)
	}
	if c := face.Contrast; c != nil {
		writeRatio(&b, "Skin-hair contrast distance", c.SkinHair)
		writeRatio(&b, "Skin-eye contrast distance", c.SkinEye)
		writeRatio(&b, "Overall contrast", c.Overall)
	}
	if body != nil {
		writeRatio(&b, "Shoulder/hip ratio", body.ShoulderHip)
		writeRatio(&b, "Waist/hip ratio", body.WaistHip)
		writeRatio(&b, "Leg/torso ratio", body.LegTorso)
	}

	if opts.Age != nil {
		fmt.Fprintf(&b, "Age: %d\n", *opts.Age)
	}
	if opts.Gender != "" {
		fmt.Fprintf(&b, "Gender: %s\n", opts.Gender)
	}

	if body == nil {
		b.WriteString("\n")
		b.WriteString(nullBodyDirective)
	}
	b.WriteString("\n")
	b.WriteString(languageDirective(opts.Lang))
	return b.String()
}

// ImagePrompt renders the template with a trailing photo directive and
// returns the media attachments: the face image first, the body image
// second when present.
func ImagePrompt(face, body MediaPart, opts Options) (string, []MediaPart) {
	var b strings.Builder
	b.WriteString(DiagnosisPrompt())
	b.WriteString("\n\nAnalyze the attached face photo")
	parts := []MediaPart{face}
	if len(body.Data) > 0 {
		b.WriteString(" and body photo")
		parts = append(parts, body)
	}
	b.WriteString(". Measure skin, hair, eye and lip colors and the face proportions directly from the image.\n")

	if opts.Age != nil {
		fmt.Fprintf(&b, "Age: %d\n", *opts.Age)
	}
	if opts.Gender != "" {
		fmt.Fprintf(&b, "Gender: %s\n", opts.Gender)
	}
	if len(body.Data) == 0 {
		b.WriteString(nullBodyDirective)
		b.WriteString("\n")
	}
	b.WriteString(languageDirective(opts.Lang))
	return b.String(), parts
}

// writeColor emits one measured color line. LAB is preferred when
// present, otherwise RGB, otherwise the raw hex; samples with no
// usable representation are skipped.
func writeColor(b *strings.Builder, label string, s *models.ColorSample) {
	if s == nil {
		return
	}
	switch {
	case s.LAB != nil:
		fmt.Fprintf(b, "%s: LAB(%.1f, %.1f, %.1f)", label, s.LAB.L, s.LAB.A, s.LAB.B)
	case s.RGB != nil:
		fmt.Fprintf(b, "%s: RGB(%d, %d, %d)", label, s.RGB.R, s.RGB.G, s.RGB.B)
	case s.Hex != "":
		fmt.Fprintf(b, "%s: %s", label, s.Hex)
	default:
		return
	}
	if s.Hex != "" && (s.LAB != nil || s.RGB != nil) {
		fmt.Fprintf(b, " (%s)", s.Hex)
	}
	b.WriteString("\n")
}

func writeRatio(b *strings.Builder, label string, v *float64) {
	if v == nil {
		return
	}
	fmt.Fprintf(b, "%s: %.2f\n", label, *v)
}
