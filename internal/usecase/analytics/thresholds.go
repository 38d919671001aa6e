package analytics

// Message-level sentiment labels (inclusive bounds)
const (
	MessagePositiveThreshold = 0.05
	MessageNegativeThreshold = -0.05
)

// Sentiment bucket counts and distributions (exclusive bounds)
const (
	BucketPositiveThreshold = 0.05
	BucketNegativeThreshold = -0.05
)

// Meeting-level sentiment label (exclusive bounds)
const (
	MeetingPositiveThreshold = 0.1
	MeetingNegativeThreshold = -0.1
)

// Engagement score composition
const (
	EngagementWordWeight          = 0.4
	EngagementQuestionWeight      = 0.3
	EngagementParticipationWeight = 0.3
	// EngagementFullWordCount is the average message length that earns the full word score
	EngagementFullWordCount = 20.0
)

// Trend classification, in percent change between windows (exclusive bounds)
const (
	ChangeEpsilon = 0.001

	SentimentTrendThreshold     = 10.0
	ParticipationTrendThreshold = 5.0
	EngagementTrendThreshold    = 10.0
	VolumeTrendThreshold        = 15.0
	SpeakerTrendThreshold       = 15.0

	MinTrendMeetings = 2
)

// Risk detection
const (
	MinRiskMeetings = 3

	SentimentDeclineThreshold       = -15.0
	NegativeSentimentThreshold      = -0.3
	ParticipationImbalanceThreshold = 0.5
	EngagementDeclineThreshold      = -20.0
	VolumeDeclineThreshold          = -20.0
	LowEngagementThreshold          = 40.0

	DominantSpeakerThreshold  = 50.0
	HeavySpeakerThreshold     = 40.0
	TopTwoSpeakersThreshold   = 75.0
	DisengagementWindow       = 3
	DisengagementDecline      = -25.0
	DisengagementFloor        = 35.0
	DisengagementDefaultScore = 50
)

// Risk score weights for the overall blend
const (
	ConflictWeight  = 0.4
	BurnoutWeight   = 0.35
	DominanceWeight = 0.25
)

// Team health index weights
const (
	HealthSentimentWeight     = 0.30
	HealthParticipationWeight = 0.30
	HealthEngagementWeight    = 0.20
	HealthVolumeWeight        = 0.20

	VolumeStableScore     = 80.0
	VolumeIncreasingScore = 70.0
	VolumeDecreasingScore = 50.0
)
