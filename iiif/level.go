package iiif

// Compliance level identifiers.
const (
	Level0 = "level0"
	Level1 = "level1"
	Level2 = "level2"
)

// Feature names that turn into validator capability flags.
const (
	FeatureSizeUpscaling     = "sizeUpscaling"
	FeatureRotationArbitrary = "rotationArbitrary"
	FeatureMirroring         = "mirroring"
)

// The cumulative compliance tables of the Image API 3.0: everything
// level0 mandates is mandated by level1, and so on up.
var level1Features = []string{
	"baseUriRedirect",
	"cors",
	"jsonldMediaType",
	"regionByPx",
	"regionSquare",
	"sizeByW",
	"sizeByH",
	"sizeByWh",
}

var level2Features = append(append([]string{}, level1Features...),
	"regionByPct",
	"rotationBy90s",
	"sizeByConfinedWh",
	"sizeByPct",
)

var levelFeatures = map[string][]string{
	Level0: {},
	Level1: level1Features,
	Level2: level2Features,
}

var levelFormats = map[string][]string{
	Level0: {"jpg"},
	Level1: {"jpg"},
	Level2: {"jpg", "png"},
}

var levelQualities = map[string][]string{
	Level0: {"default"},
	Level1: {"default"},
	Level2: {"default", "color", "gray", "bitonal"},
}

// FeaturesForProfile returns the features a compliance level mandates.
// Unknown profiles mandate nothing.
func FeaturesForProfile(profile string) []string {
	return append([]string{}, levelFeatures[profile]...)
}

// FormatsForProfile returns the formats a compliance level mandates.
func FormatsForProfile(profile string) []string {
	return append([]string{}, levelFormats[profile]...)
}

// QualitiesForProfile returns the qualities a compliance level mandates.
func QualitiesForProfile(profile string) []string {
	return append([]string{}, levelQualities[profile]...)
}

func isLevel(profile string) bool {
	_, ok := levelFeatures[profile]
	return ok
}

// ComplianceResult reports a comparison against a target level.
type ComplianceResult struct {
	Compliant       bool     `json:"compliant"`
	MissingFeatures []string `json:"missingFeatures"`
}

// CheckComplianceLevel compares the features implied by the document's own
// profile, plus its extraFeatures, against the target level.
func CheckComplianceLevel(info *ImageServiceInfo, target string) ComplianceResult {
	declared := declaredFeatures(info)

	missing := []string{}
	for _, f := range levelFeatures[target] {
		if !declared[f] {
			missing = append(missing, f)
		}
	}

	return ComplianceResult{
		Compliant:       len(missing) == 0,
		MissingFeatures: missing,
	}
}

// CapabilitiesForInfo derives the validator capabilities from a service
// description: the supported quality/format sets and the three feature
// flags the size and rotation grammars are gated on.
func CapabilitiesForInfo(info *ImageServiceInfo) *Capabilities {
	features := declaredFeatures(info)

	return &Capabilities{
		Qualities:         append(QualitiesForProfile(info.Profile), info.ExtraQualities...),
		Formats:           append(FormatsForProfile(info.Profile), info.ExtraFormats...),
		Upscale:           features[FeatureSizeUpscaling],
		ArbitraryRotation: features[FeatureRotationArbitrary],
		Mirroring:         features[FeatureMirroring],
	}
}

func declaredFeatures(info *ImageServiceInfo) map[string]bool {
	declared := make(map[string]bool)
	for _, f := range levelFeatures[info.Profile] {
		declared[f] = true
	}
	for _, f := range info.ExtraFeatures {
		declared[f] = true
	}
	return declared
}
