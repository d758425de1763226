package dto

// MemberInput 报名表中的单个成员，首位即队长
type MemberInput struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	CollegeName string  `json:"collegeName"`
	Department  *string `json:"department,omitempty"`
	YearOfStudy *int    `json:"yearOfStudy,omitempty"`
	Location    *string `json:"location,omitempty"`
	TShirtSize  *string `json:"tShirtSize,omitempty"`
}

// ProblemStatementRef 题目引用：已有编号或内联自定义提交，二选一
type ProblemStatementRef struct {
	IsCustom    bool     `json:"isCustom"`
	PsID        string   `json:"psId,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type TeamRegistrationRequest struct {
	TeamName         string              `json:"teamName"`
	Members          []MemberInput       `json:"members"`
	ProblemStatement ProblemStatementRef `json:"problemStatement"`
}

type RegistrationResponse struct {
	Success bool        `json:"success"`
	TeamID  uint        `json:"teamId,omitempty"`
	SccID   string      `json:"sccId,omitempty"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}
