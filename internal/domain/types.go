package domain

// JobStatus tracks the lifecycle of a single voice generation job.
type JobStatus string

const (
	JobStatusIdle    JobStatus = "idle"
	JobStatusRunning JobStatus = "running"
)

// Settings contains the remote inference endpoints used by the app.
type Settings struct {
	ASRURL string `json:"asrUrl"`
	TTSURL string `json:"ttsUrl"`
}

// SubmissionRequest carries one audio payload bound for transcription.
// The transcription result is delivered out-of-band by email, never by
// this app.
type SubmissionRequest struct {
	Email    string
	FileName string
	Audio    []byte
}

// SubmissionReceipt acknowledges that a submission was handed to the
// background dispatcher. It says nothing about downstream success.
type SubmissionReceipt struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Message  string `json:"message"`
}

// GenerationJob stores the current voice generation state and its
// outcome. ResultAudio and ErrorDetail are never both set.
type GenerationJob struct {
	Status      JobStatus `json:"status"`
	ResultAudio []byte    `json:"resultAudio,omitempty"`
	ErrorDetail string    `json:"errorDetail,omitempty"`
}

// GeneratedAudioFileName is the download name offered for synthesized audio.
const GeneratedAudioFileName = "output.wav"

// RecordingFileName is the fixed name used for microphone submissions.
const RecordingFileName = "recording.wav"
