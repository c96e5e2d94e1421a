// internal/models/script.go
package models

// ScriptDraft is one generated variation, before polishing.
type ScriptDraft struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Framework    string `json:"framework"`
	HookStrategy string `json:"hookStrategy"`
	Content      string `json:"content"`
}

// FinalScript is a production-ready script derived from one draft.
type FinalScript struct {
	ID             int      `json:"id"`
	Framework      string   `json:"framework"`
	VerbalHook     string   `json:"verbalHook"`
	VisualHook     string   `json:"visualHook"`
	OnScreenHook   string   `json:"onScreenHook"`
	FullScript     string   `json:"fullScript"`
	AdditionalText string   `json:"additionalText"`
	Caption        string   `json:"caption"`
	Hashtags       []string `json:"hashtags"`
	Notes          string   `json:"notes"`
}

type SavedScriptMetrics struct {
	Views string `json:"views"`
	CTR   string `json:"ctr"`
	Sales string `json:"sales"`
}

// SavedScript is a script library entry.
type SavedScript struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	ProductName string             `json:"productName"`
	Category    string             `json:"category"`
	Framework   string             `json:"framework"`
	Thumbnail   string             `json:"thumbnail,omitempty"`
	DateCreated string             `json:"dateCreated"`
	Metrics     SavedScriptMetrics `json:"metrics"`
	Content     string             `json:"content"`
}

// CompetitorPattern is one repeated technique found in a competitor's videos.
type CompetitorPattern struct {
	PatternName string `json:"patternName"`
	Example     string `json:"example"`
	WhyItWorks  string `json:"whyItWorks"`
}

type CompetitorAnalysis struct {
	CompetitorName          string              `json:"competitorName"`
	PerformanceOverview     string              `json:"performanceOverview"`
	SuccessfulPatterns      []CompetitorPattern `json:"successfulPatterns"`
	Opportunities           []string            `json:"opportunities"`
	DifferentiationStrategy string              `json:"differentiationStrategy"`
	SampleScript            string              `json:"sampleScript"`
}

// CompetitorInsights is the competitor-spy workflow report.
type CompetitorInsights struct {
	Summary struct {
		Handle         string      `json:"handle"`
		Followers      interface{} `json:"followers"`
		AvgEngagement  float64     `json:"avgEngagement"`
		AnalyzedVideos int         `json:"analyzedVideos"`
	} `json:"summary"`
	TopStrategies []struct {
		Strategy       string `json:"strategy"`
		Frequency      int    `json:"frequency"`
		Example        string `json:"example"`
		Recommendation string `json:"recommendation"`
	} `json:"topStrategies"`
	ContentCalendar struct {
		BestPostingTimes     []string `json:"bestPostingTimes"`
		RecommendedFrequency string   `json:"recommendedFrequency"`
		OptimalLength        string   `json:"optimalLength"`
	} `json:"contentCalendar"`
	HashtagStrategy struct {
		TopPerformingHashtags []struct {
			Tag  string `json:"tag"`
			Uses int    `json:"uses"`
		} `json:"topPerformingHashtags"`
		Recommendation string `json:"recommendation"`
	} `json:"hashtagStrategy"`
	BestPerformingVideo struct {
		URL     string `json:"url"`
		Views   int64  `json:"views"`
		Likes   int64  `json:"likes"`
		Caption string `json:"caption"`
		Hook    string `json:"hook"`
	} `json:"bestPerformingVideo"`
	ActionableHooks []string `json:"actionableHooks"`
	Recommendations []string `json:"recommendations"`
}

// ViralAnalysis breaks down why a source video worked.
type ViralAnalysis struct {
	Hook struct {
		Type          string `json:"type"`
		Pattern       string `json:"pattern"`
		Effectiveness string `json:"effectiveness"`
	} `json:"hook"`
	Structure struct {
		Framework string `json:"framework"`
		Pacing    string `json:"pacing"`
		Timing    string `json:"timing"`
	} `json:"structure"`
	Language struct {
		Tone     string   `json:"tone"`
		Keywords []string `json:"keywords"`
		Emphasis string   `json:"emphasis"`
	} `json:"language"`
	ViralElements []string `json:"viralElements"`
}

type ScriptVariation struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Hook            string `json:"hook"`
	Script          string `json:"script"`
	AdaptationNotes string `json:"adaptationNotes"`
}

// ViralRepurpose is the viral-repurpose workflow report.
type ViralRepurpose struct {
	OriginalTranscript string            `json:"originalTranscript"`
	Analysis           ViralAnalysis     `json:"analysis"`
	Variations         []ScriptVariation `json:"variations"`
	ViralElements      []string          `json:"viralElements"`
	ViralScore         *int              `json:"viralScore,omitempty"`
}
