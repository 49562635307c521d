// ABOUTME: View-model for the profile screen.
// ABOUTME: Loads and saves the single local profile and its picture URI.
package viewmodel

import (
	"context"
	"errors"

	"github.com/harperreed/gainsbook/internal/models"
	"github.com/harperreed/gainsbook/internal/storage"
)

type ProfileViewModel struct {
	base

	Profile    *State[*models.Profile]
	PictureURI *State[string]
	Loaded     *State[bool]
}

func NewProfileViewModel(ctx context.Context, deps Deps) *ProfileViewModel {
	return &ProfileViewModel{
		base:       newBase(ctx, "profile", deps),
		Profile:    NewState[*models.Profile](nil),
		PictureURI: NewState(""),
		Loaded:     NewState(false),
	}
}

// Load fetches the stored profile. A missing profile leaves Profile nil.
func (vm *ProfileViewModel) Load() {
	vm.scope.Launch("load_profile", func(ctx context.Context) error {
		p, err := vm.current(ctx)
		if err != nil {
			return err
		}
		vm.publish(p)
		vm.Loaded.Set(true)
		return nil
	})
}

// SetProfile saves a new username and description, keeping the picture.
func (vm *ProfileViewModel) SetProfile(username, description string) {
	vm.scope.Launch("set_profile", func(ctx context.Context) error {
		existing, err := vm.current(ctx)
		if err != nil {
			return err
		}
		p := models.NewProfile(username, description)
		if existing != nil {
			p.WithPicture(existing.PictureURI)
		}
		if err := vm.deps.Repo.SaveProfile(ctx, p); err != nil {
			return err
		}
		vm.publish(p)
		return nil
	})
}

// SetProfilePicture saves a new picture URI.
func (vm *ProfileViewModel) SetProfilePicture(uri string) {
	vm.scope.Launch("set_profile_picture", func(ctx context.Context) error {
		p, err := vm.current(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			p = models.NewProfile("", "")
		}
		p.WithPicture(uri)
		if err := vm.deps.Repo.SaveProfile(ctx, p); err != nil {
			return err
		}
		vm.publish(p)
		return nil
	})
}

func (vm *ProfileViewModel) current(ctx context.Context) (*models.Profile, error) {
	p, err := vm.deps.Repo.GetProfile(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (vm *ProfileViewModel) publish(p *models.Profile) {
	vm.Profile.Set(p)
	if p != nil {
		vm.PictureURI.Set(p.PictureURI)
	}
}
