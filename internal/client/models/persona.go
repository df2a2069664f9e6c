package models

type LocationStyle string

const (
	LocationLifestyle LocationStyle = "lifestyle"
	LocationLuxury    LocationStyle = "luxury"
	LocationTravel    LocationStyle = "travel"
	LocationLocal     LocationStyle = "local"
	LocationMixed     LocationStyle = "mixed"
)

type VisualAttributes struct {
	Gender                 string `json:"gender"`
	Ethnicity              string `json:"ethnicity"`
	AgeRange               string `json:"ageRange"`
	FaceShape              string `json:"faceShape"`
	Eyes                   string `json:"eyes"`
	Nose                   string `json:"nose"`
	Lips                   string `json:"lips"`
	Hair                   string `json:"hair"`
	Body                   string `json:"body"`
	DistinguishingFeatures string `json:"distinguishingFeatures"`
}

// Persona is the descriptive identity driving content for one influencer.
// Once VisualIdentityInitialized is set the FaceDescriptorBlock is frozen.
type Persona struct {
	Name              string           `json:"name"`
	Age               int              `json:"age"`
	GenderExpression  string           `json:"genderExpression"`
	PersonalityTraits []string         `json:"personalityTraits"`
	CommunicationTone string           `json:"communicationTone"`
	VisualAesthetics  string           `json:"visualAesthetics"`
	VisualAttributes  VisualAttributes `json:"visualAttributes"`
	Dos               []string         `json:"dos"`
	Donts             []string         `json:"donts"`
	TargetAudience    string           `json:"targetAudience"`

	BaseCity               string        `json:"baseCity"`
	Country                string        `json:"country"`
	LocationStyle          LocationStyle `json:"locationStyle"`
	PreferredLocationTypes []string      `json:"preferredLocationTypes"`

	VisualIdentityInitialized bool     `json:"visualIdentityInitialized"`
	VisualReferenceImages     []string `json:"visualReferenceImages"`
	FaceDescriptorBlock       string   `json:"faceDescriptorBlock"`
}

// DefaultPersona returns the baseline profile every influencer starts from.
func DefaultPersona() Persona {
	return Persona{
		Name:              "Aria",
		Age:               24,
		GenderExpression:  "Female, Modern Chic",
		PersonalityTraits: []string{"Witty", "Tech-savvy", "Optimistic", "Relatable"},
		CommunicationTone: "Conversational, Hinglish accents, engaging, uses minimal but impactful emojis.",
		VisualAesthetics:  "Warm tones, golden hour, modern Indian urban, clean lines.",
		VisualAttributes: VisualAttributes{
			Gender:                 "Female",
			Ethnicity:              "Indian",
			AgeRange:               "24-26",
			FaceShape:              "Oval",
			Eyes:                   "Dark brown, almond-shaped",
			Nose:                   "Straight",
			Lips:                   "Full, natural",
			Hair:                   "Dark brown wavy hair, shoulder length",
			Body:                   "Slim, athletic build, 5'6\"",
			DistinguishingFeatures: "Small nose stud, expressive eyebrows",
		},
		BaseCity:               "Mumbai",
		Country:                "India",
		LocationStyle:          LocationMixed,
		PreferredLocationTypes: []string{"Bandra cafes", "South Bombay heritage", "modern coworking", "home studio", "Marine Drive"},
		Dos:                    []string{"Focus on Indian lifestyle", "Show tech/work setups", "Engage with followers"},
		Donts:                  []string{"Be political", "Use offensive language", "Promote gambling"},
		TargetAudience:         "Gen Z & Millennials in India interested in Tech and Lifestyle",
		VisualReferenceImages:  []string{},
	}
}

// PersonaPatch is a persona as read back from storage, where any field may
// be missing because the document predates it. Nil means absent.
type PersonaPatch struct {
	Name              *string                `json:"name,omitempty"`
	Age               *int                   `json:"age,omitempty"`
	GenderExpression  *string                `json:"genderExpression,omitempty"`
	PersonalityTraits []string               `json:"personalityTraits,omitempty"`
	CommunicationTone *string                `json:"communicationTone,omitempty"`
	VisualAesthetics  *string                `json:"visualAesthetics,omitempty"`
	VisualAttributes  *VisualAttributesPatch `json:"visualAttributes,omitempty"`
	Dos               []string               `json:"dos,omitempty"`
	Donts             []string               `json:"donts,omitempty"`
	TargetAudience    *string                `json:"targetAudience,omitempty"`

	BaseCity               *string        `json:"baseCity,omitempty"`
	Country                *string        `json:"country,omitempty"`
	LocationStyle          *LocationStyle `json:"locationStyle,omitempty"`
	PreferredLocationTypes []string       `json:"preferredLocationTypes,omitempty"`

	VisualIdentityInitialized *bool    `json:"visualIdentityInitialized,omitempty"`
	VisualReferenceImages     []string `json:"visualReferenceImages,omitempty"`
	FaceDescriptorBlock       *string  `json:"faceDescriptorBlock,omitempty"`
}

type VisualAttributesPatch struct {
	Gender                 *string `json:"gender,omitempty"`
	Ethnicity              *string `json:"ethnicity,omitempty"`
	AgeRange               *string `json:"ageRange,omitempty"`
	FaceShape              *string `json:"faceShape,omitempty"`
	Eyes                   *string `json:"eyes,omitempty"`
	Nose                   *string `json:"nose,omitempty"`
	Lips                   *string `json:"lips,omitempty"`
	Hair                   *string `json:"hair,omitempty"`
	Body                   *string `json:"body,omitempty"`
	DistinguishingFeatures *string `json:"distinguishingFeatures,omitempty"`
}

// MergePersona reconciles a stored persona with base.
//
//   - scalar fields present in saved replace base
//   - visual attributes merge field by field
//   - list fields are taken from saved when present, even if empty
//   - visualIdentityInitialized is taken from saved when present
//   - faceDescriptorBlock is taken from saved only when non-empty
//
// Fields saved does not carry keep the base value, so documents written
// before a field existed load with its default.
func MergePersona(base Persona, saved *PersonaPatch) Persona {
	out := base.Clone()
	if saved == nil {
		return out
	}

	setString(&out.Name, saved.Name)
	if saved.Age != nil {
		out.Age = *saved.Age
	}
	setString(&out.GenderExpression, saved.GenderExpression)
	setString(&out.CommunicationTone, saved.CommunicationTone)
	setString(&out.VisualAesthetics, saved.VisualAesthetics)
	setString(&out.TargetAudience, saved.TargetAudience)
	setString(&out.BaseCity, saved.BaseCity)
	setString(&out.Country, saved.Country)
	if saved.LocationStyle != nil {
		out.LocationStyle = *saved.LocationStyle
	}

	setList(&out.PersonalityTraits, saved.PersonalityTraits)
	setList(&out.Dos, saved.Dos)
	setList(&out.Donts, saved.Donts)
	setList(&out.PreferredLocationTypes, saved.PreferredLocationTypes)
	setList(&out.VisualReferenceImages, saved.VisualReferenceImages)

	if saved.VisualIdentityInitialized != nil {
		out.VisualIdentityInitialized = *saved.VisualIdentityInitialized
	}
	if saved.FaceDescriptorBlock != nil && *saved.FaceDescriptorBlock != "" {
		out.FaceDescriptorBlock = *saved.FaceDescriptorBlock
	}

	if va := saved.VisualAttributes; va != nil {
		a := &out.VisualAttributes
		setString(&a.Gender, va.Gender)
		setString(&a.Ethnicity, va.Ethnicity)
		setString(&a.AgeRange, va.AgeRange)
		setString(&a.FaceShape, va.FaceShape)
		setString(&a.Eyes, va.Eyes)
		setString(&a.Nose, va.Nose)
		setString(&a.Lips, va.Lips)
		setString(&a.Hair, va.Hair)
		setString(&a.Body, va.Body)
		setString(&a.DistinguishingFeatures, va.DistinguishingFeatures)
	}
	return out
}

// Clone returns a deep copy of p.
func (p Persona) Clone() Persona {
	out := p
	out.PersonalityTraits = cloneStrings(p.PersonalityTraits)
	out.Dos = cloneStrings(p.Dos)
	out.Donts = cloneStrings(p.Donts)
	out.PreferredLocationTypes = cloneStrings(p.PreferredLocationTypes)
	out.VisualReferenceImages = cloneStrings(p.VisualReferenceImages)
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// setList copies v into dst when v was present in the document. An empty
// JSON array decodes to a non-nil slice and counts as present.
func setList(dst *[]string, v []string) {
	if v != nil {
		*dst = cloneStrings(v)
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
