package constant

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

type QuestionType string

const (
	QuestionTypeChoice      QuestionType = "choice"
	QuestionTypeMultiChoice QuestionType = "multi_choice"
	QuestionTypeText        QuestionType = "text"
	QuestionTypeTrueFalse   QuestionType = "true_false"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusFailed     JobStatus = "FAILED"
	JobStatusCompleted  JobStatus = "COMPLETED"
)

type SecurityAction string

const (
	SecurityActionLogin        SecurityAction = "login"
	SecurityActionLogout       SecurityAction = "logout"
	SecurityActionVideoAccess  SecurityAction = "video_access"
	SecurityActionVideoUpload  SecurityAction = "video_upload"
	SecurityActionAccessDenied SecurityAction = "access_denied"
	SecurityActionSuspicious   SecurityAction = "suspicious"
)

// PassThreshold is the minimum quiz score percentage that counts as passed.
const PassThreshold = 70.0

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}
