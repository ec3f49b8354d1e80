package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/virtualtechbox/backend/internal/hubspot"
	"github.com/virtualtechbox/backend/internal/models"
	"go.uber.org/zap"
)

// ContactDirectory is the interface that wraps methods of the remote CRM used as the system of record for users
type ContactDirectory interface {
	// Method CreateContact creates a contact from CRM properties and returns its id.
	//
	// hubspot.ErrConflict is returned if a contact with the same email already exists.
	CreateContact(ctx context.Context, properties map[string]string) (string, error)
	// Method FindContactByEmail searches a contact with exactly the given email.
	//
	// hubspot.ErrContactNotFound is returned if no contact matches.
	FindContactByEmail(ctx context.Context, email string, properties ...string) (*hubspot.Contact, error)
	// Method AddContactToList adds an existing contact to a CRM list.
	AddContactToList(ctx context.Context, listID, contactID string) error
}

// LocalUserStore is the interface that wraps the fallback storage for users the remote CRM did not accept
type LocalUserStore interface {
	// Method Create stores a user.
	//
	// models.ErrUserAlreadyExists is returned if a user with the same email is already stored.
	Create(ctx context.Context, user *models.User) error
}

// contactSearchProperties are the properties requested when looking a contact up
var contactSearchProperties = []string{
	hubspot.PropertyEmail,
	hubspot.PropertyFirstName,
	hubspot.PropertyLastName,
	hubspot.PropertyPhone,
	hubspot.PropertyLearningArea,
	hubspot.PropertyRegisteredAt,
}

// userDirectory persists users into the remote CRM with a fallback to the local store
type userDirectory struct {
	remote ContactDirectory
	local  LocalUserStore
	listID string
	logger *zap.Logger
}

// NewUserDirectory creates a new user directory.
//
// remote may be nil, in which case every user goes to the local store.
// listID is optional, when set every contact created remotely is added to that list.
func NewUserDirectory(remote ContactDirectory, local LocalUserStore, listID string, logger *zap.Logger) *userDirectory {
	if remote == nil {
		logger.Warn("HubSpot API key not provided, users will be stored locally only")
	}

	return &userDirectory{
		remote: remote,
		local:  local,
		listID: listID,
		logger: logger,
	}
}

// Connected reports whether a remote CRM is configured
func (d *userDirectory) Connected() bool {
	return d.remote != nil
}

// FindByEmail looks a user up in the remote CRM.
//
// Lookup failures are not surfaced: an unavailable CRM is reported as models.ErrUserNotFound
// so that registration is never blocked by the CRM being down.
func (d *userDirectory) FindByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	if d.remote == nil {
		return nil, models.ErrUserNotFound
	}

	contact, err := d.remote.FindContactByEmail(ctx, email, contactSearchProperties...)
	if err != nil {
		if !errors.Is(err, hubspot.ErrContactNotFound) {
			d.logger.Warn("failed to search HubSpot contacts, assuming user does not exist", zap.Error(err))
		}
		return nil, models.ErrUserNotFound
	}

	return &models.UserRecord{
		Email:        contact.Properties[hubspot.PropertyEmail],
		Name:         strings.TrimSpace(contact.Properties[hubspot.PropertyFirstName] + " " + contact.Properties[hubspot.PropertyLastName]),
		PhoneNumber:  contact.Properties[hubspot.PropertyPhone],
		LearningArea: contact.Properties[hubspot.PropertyLearningArea],
		HubSpotID:    contact.ID,
	}, nil
}

// Register stores a user in the remote CRM, falling back to the local store.
//
// A conflict reported by the CRM counts as success. Any other CRM failure sends the
// user to the local store. models.ErrRegistrationFailed is returned only when both fail.
func (d *userDirectory) Register(ctx context.Context, user *models.User) error {
	remoteErr := d.registerRemote(ctx, user)
	if remoteErr == nil {
		return nil
	}

	d.logger.Warn("falling back to local user storage", zap.String("email", user.Email), zap.Error(remoteErr))

	// The fallback write must not be lost because the client went away
	if err := d.local.Create(context.WithoutCancel(ctx), user); err != nil {
		if errors.Is(err, models.ErrUserAlreadyExists) {
			d.logger.Info("user already stored locally", zap.String("email", user.Email))
			return nil
		}
		d.logger.Error("failed to store user locally", zap.String("email", user.Email), zap.Error(err))
		return fmt.Errorf("%w: remote: %v; local: %v", models.ErrRegistrationFailed, remoteErr, err)
	}

	d.logger.Info("user stored locally", zap.String("email", user.Email))
	return nil
}

// registerRemote creates the CRM contact, nil means the user is owned by the CRM
func (d *userDirectory) registerRemote(ctx context.Context, user *models.User) error {
	if d.remote == nil {
		return models.ErrRemoteUnavailable
	}

	contactID, err := d.remote.CreateContact(ctx, contactProperties(user))
	if err != nil {
		if errors.Is(err, hubspot.ErrConflict) {
			d.logger.Warn("contact already exists in HubSpot", zap.String("email", user.Email))
			return nil
		}
		return fmt.Errorf("%w: %v", models.ErrRemoteUnavailable, err)
	}

	d.logger.Info("user added to HubSpot", zap.String("email", user.Email), zap.String("contact_id", contactID))

	if d.listID != "" {
		if err := d.remote.AddContactToList(ctx, d.listID, contactID); err != nil {
			d.logger.Warn("failed to add contact to list", zap.String("contact_id", contactID), zap.String("list_id", d.listID), zap.Error(err))
		}
	}

	return nil
}

// contactProperties maps a user to HubSpot contact properties.
// The first word of the name is the first name, the rest is the last name.
func contactProperties(user *models.User) map[string]string {
	firstName, lastName := user.Name, ""
	if parts := strings.Fields(user.Name); len(parts) > 1 {
		firstName = parts[0]
		lastName = strings.Join(parts[1:], " ")
	}

	return map[string]string{
		hubspot.PropertyEmail:        user.Email,
		hubspot.PropertyFirstName:    firstName,
		hubspot.PropertyLastName:     lastName,
		hubspot.PropertyPhone:        user.PhoneNumber,
		hubspot.PropertyLearningArea: user.LearningArea,
		hubspot.PropertyRegisteredAt: user.RegisteredAt.UTC().Format(hubspot.RegisteredAtLayout),
	}
}
