package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type AssignmentCreatedMailData struct {
	GuardName        string `json:"guardName"`
	PostName         string `json:"postName"`
	InstallationName string `json:"installationName"`
	SlotNumber       int32  `json:"slotNumber"`
	StartDate        string `json:"startDate"`
}

type AssignmentClosedMailData struct {
	GuardName        string `json:"guardName"`
	PostName         string `json:"postName"`
	InstallationName string `json:"installationName"`
	EndDate          string `json:"endDate"`
	Reason           string `json:"reason"`
}

type GuardWelcomeMailData struct {
	GuardName string `json:"guardName"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}
