package user

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when a referenced user no longer resolves
	// to a row. Fatal for the request, not a business-recoverable error.
	ErrUserNotFound = errors.New("Utilisateur introuvable")

	// ErrUsernameTaken is returned at registration or profile update when
	// the username is already in use.
	ErrUsernameTaken = errors.New("UserName déjà utilisé")

	// ErrEmailTaken is returned at registration when a local account with
	// the same email already exists.
	ErrEmailTaken = errors.New("Email déjà utilisé")

	ErrMissingUsername = errors.New("Le nom d'utilisateur est requis")
	ErrMissingEmail    = errors.New("L'email est requis")
	ErrMissingPassword = errors.New("Le mot de passe est requis")

	// ErrSelfConnection is returned when a user tries to add themselves
	// as a payee contact.
	ErrSelfConnection = errors.New("Vous ne pouvez pas vous ajouter vous même comme amis")

	// ErrConnectionNotFound is the class sentinel matched by
	// ConnectionTargetNotFoundError through errors.Is.
	ErrConnectionNotFound = errors.New("l'utilisateur à connecter n'existe pas")

	// ErrAlreadyConnected is the class sentinel matched by
	// AlreadyConnectedError through errors.Is.
	ErrAlreadyConnected = errors.New("cette personne fait déjà partie de vos contacts")

	// ErrEmailLockedForOAuth and ErrPasswordLockedForOAuth guard fields a
	// federated account cannot change.
	ErrEmailLockedForOAuth    = errors.New("Modification de l'email impossible pour un compte Google ou Facebook.")
	ErrPasswordLockedForOAuth = errors.New("Modification du mot de passe impossible pour un compte Google ou Facebook.")

	ErrNothingToUpdate = errors.New("Aucune données à mettre à jour. Veuillez en choisir au moins une.")

	// ErrInvalidEmail is returned when a profile update carries an email
	// in a bad format.
	ErrInvalidEmail = errors.New("L'email n'est pas valide, veuillez écrire un mail au bon format.")

	// ErrDepositNotPositive is returned when a deposit amount is zero or
	// negative.
	ErrDepositNotPositive = errors.New("le montant doit être positif")
)

// ConnectionTargetNotFoundError reports that no user exists with the email
// given to AddConnection. The message carries the email for user display.
type ConnectionTargetNotFoundError struct {
	Email string
}

func (e *ConnectionTargetNotFoundError) Error() string {
	return fmt.Sprintf("L'utilisateur avec l'email %s n'existe pas, veuillez vérifier.", e.Email)
}

func (e *ConnectionTargetNotFoundError) Is(target error) bool {
	return target == ErrConnectionNotFound
}

// AlreadyConnectedError reports that the target is already in the owner's
// contact set. The message names both the email and the display name.
type AlreadyConnectedError struct {
	Email    string
	Username string
}

func (e *AlreadyConnectedError) Error() string {
	return fmt.Sprintf("Cette personne fait déjà partie de vos contacts : %s (%s)", e.Email, e.Username)
}

func (e *AlreadyConnectedError) Is(target error) bool {
	return target == ErrAlreadyConnected
}

// EmailConflictError reports a profile-update email collision with another
// account.
type EmailConflictError struct {
	Email string
}

func (e *EmailConflictError) Error() string {
	return fmt.Sprintf("L'email existe déjà : %s Veuillez en choisir une autre.", e.Email)
}

func (e *EmailConflictError) Is(target error) bool {
	return target == ErrEmailTaken
}

// UsernameConflictError reports a profile-update username collision with
// another account.
type UsernameConflictError struct {
	Username string
}

func (e *UsernameConflictError) Error() string {
	return fmt.Sprintf("Le nom d'utilisateur existe déjà : %s Veuillez en choisir un autre.", e.Username)
}

func (e *UsernameConflictError) Is(target error) bool {
	return target == ErrUsernameTaken
}
