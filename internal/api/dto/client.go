package dto

import "github.com/martijn/clientsapi/internal/core/domain"

// CreateClientRequest represents the client creation request.
// Pointer fields make absent and null values fail the required binding.
type CreateClientRequest struct {
	Nom            *Text    `json:"nom" binding:"required"`
	Prenom         *Text    `json:"prenom" binding:"required"`
	Telephone      *Text    `json:"telephone" binding:"required"`
	Email          *Text    `json:"email" binding:"required"`
	PointsFidelite *Integer `json:"pointsFidelite"`
}

func (r CreateClientRequest) ToClient() *domain.Client {
	return domain.NewClient(
		string(*r.Nom),
		string(*r.Prenom),
		string(*r.Telephone),
		string(*r.Email),
		r.PointsFidelite.IntPtr(),
	)
}

// UpdateClientRequest carries any subset of the client fields
type UpdateClientRequest struct {
	Nom            *Text    `json:"nom"`
	Prenom         *Text    `json:"prenom"`
	Telephone      *Text    `json:"telephone"`
	Email          *Text    `json:"email"`
	PointsFidelite *Integer `json:"pointsFidelite"`
}

func (r UpdateClientRequest) ToPatch() domain.ClientPatch {
	return domain.ClientPatch{
		Nom:            r.Nom.StringPtr(),
		Prenom:         r.Prenom.StringPtr(),
		Telephone:      r.Telephone.StringPtr(),
		Email:          r.Email.StringPtr(),
		PointsFidelite: r.PointsFidelite.IntPtr(),
	}
}

// ClientResponse represents a client
type ClientResponse struct {
	ID             string `json:"_id"`
	Nom            string `json:"nom"`
	Prenom         string `json:"prenom"`
	Telephone      string `json:"telephone"`
	Email          string `json:"email"`
	PointsFidelite int    `json:"pointsFidelite"`
}

func NewClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:             client.ID,
		Nom:            client.Nom,
		Prenom:         client.Prenom,
		Telephone:      client.Telephone,
		Email:          client.Email,
		PointsFidelite: client.PointsFidelite,
	}
}
