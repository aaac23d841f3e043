package domain

// Client is a loyalty-program customer record.
type Client struct {
	ID             string `db:"id"`
	Nom            string `db:"nom"`
	Prenom         string `db:"prenom"`
	Telephone      string `db:"telephone"`
	Email          string `db:"email"`
	PointsFidelite int    `db:"points_fidelite"`
}

func NewClient(nom, prenom, telephone, email string, points *int) *Client {
	client := &Client{
		Nom:       nom,
		Prenom:    prenom,
		Telephone: telephone,
		Email:     email,
	}
	if points != nil {
		client.PointsFidelite = *points
	}
	return client
}

// ClientPatch holds the fields of a partial update. Nil fields are left untouched.
type ClientPatch struct {
	Nom            *string
	Prenom         *string
	Telephone      *string
	Email          *string
	PointsFidelite *int
}

// IsEmpty reports whether the patch carries no field at all.
func (p ClientPatch) IsEmpty() bool {
	return p.Nom == nil && p.Prenom == nil && p.Telephone == nil &&
		p.Email == nil && p.PointsFidelite == nil
}
