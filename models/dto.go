package models

// NewPerson is the payload for creating or replacing a person.
type NewPerson struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=254"`
}

// PersonDTO is the transfer shape of a stored person. Team is nil when the
// person has no team.
type PersonDTO struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Team      *uint  `json:"team"`
}

type NewTeam struct {
	Name string `json:"name" validate:"required,max=100"`
}

type Member struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type TeamDTO struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// MemberID names the person to add or remove. Any integer is accepted; ids
// that match no person are reported as missing.
type MemberID struct {
	ID *int64 `json:"id" validate:"required"`
}

// OAuthRequest carries the authorization code returned by a provider redirect.
type OAuthRequest struct {
	Code string `json:"code" validate:"required"`
}

// OAuthProfile is the identity extracted from a provider's profile endpoint.
type OAuthProfile struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// OAuthSession is the local session token pair issued after a login.
type OAuthSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func ToPersonDTO(p Person) PersonDTO {
	dto := PersonDTO{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
	}
	if p.TeamID != nil {
		teamID := *p.TeamID
		dto.Team = &teamID
	}
	return dto
}

func ToMember(p Person) Member {
	return Member{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
	}
}
