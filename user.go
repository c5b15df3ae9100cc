package bookshelf

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	PasswordHash string `json:"password"`
	Role         Role   `json:"role"`

	SavedBooks []int `json:"savedBooks"`
}

// Actor is the authenticated caller of an operation, as given by the
// credential layer.
type Actor struct {
	ID   string
	Role Role
}

func (u User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// UserRepository is the storage of users. Lookups return a zero User when
// nothing matches.
type UserRepository interface {
	Get(id string) (User, error)
	GetByEmail(email string) (User, error)
	GetByUsername(username string) (User, error)
	List() ([]User, error)

	// Insert sets the id. It fails with ErrUsernameTaken or ErrEmailTaken
	// when the username or email is already registered.
	Insert(*User) error

	// Single document updates, returning false if the user does not exist.
	AddSavedBook(userID string, bookID int) (bool, error)
	RemoveSavedBook(userID string, bookID int) (bool, error)
	SetRole(userID string, role Role) (bool, error)
	SetPasswordHash(userID string, hash string) (bool, error)
}
