package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/watchlist/internal/shared"
)

func TestMovieValidate(t *testing.T) {
	tc := []struct {
		name    string
		title   string
		year    string
		wantErr bool
	}{
		{name: "valid", title: "Leon", year: "1994"},
		{name: "max lengths", title: strings.Repeat("a", MaxTitleLength), year: "2012"},
		{name: "multibyte title within limit", title: strings.Repeat("龙", MaxTitleLength), year: "1988"},
		{name: "short year", title: "Mahjong", year: "96"},
		{name: "empty title", title: "", year: "1994", wantErr: true},
		{name: "blank title", title: "   ", year: "1994", wantErr: true},
		{name: "empty year", title: "Leon", year: "", wantErr: true},
		{name: "title too long", title: strings.Repeat("a", MaxTitleLength+1), year: "1994", wantErr: true},
		{name: "year too long", title: "Leon", year: "19944", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMovie(tt.title, tt.year).Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestMovieTrimsInput(t *testing.T) {
	movie := NewMovie("  WALL-E ", " 2008 ")
	if movie.Title() != "WALL-E" {
		t.Errorf("expected trimmed title, got %q", movie.Title())
	}
	if movie.Year() != "2008" {
		t.Errorf("expected trimmed year, got %q", movie.Year())
	}

	movie.SetTitle(" Leon ")
	movie.SetYear(" 1994")
	if movie.Title() != "Leon" || movie.Year() != "1994" {
		t.Errorf("expected setters to trim, got %q %q", movie.Title(), movie.Year())
	}
}

func TestUserValidate(t *testing.T) {
	tc := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "Admin"},
		{name: "max length", input: strings.Repeat("n", MaxNameLength)},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: strings.Repeat("n", MaxNameLength+1), wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUser(tt.input, "admin").Validate()
			if tt.wantErr != (err != nil) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserAccessors(t *testing.T) {
	user := NewUser(" Admin ", " root ")
	if user.Name() != "Admin" || user.Username() != "root" {
		t.Errorf("expected trimmed fields, got %q %q", user.Name(), user.Username())
	}
	if user.HasPassword() {
		t.Error("new user should not have a password")
	}

	user.SetPasswordHash("hash")
	if !user.HasPassword() {
		t.Error("expected password to be set")
	}
	if user.CreatedAt().IsZero() || user.UpdatedAt().IsZero() {
		t.Error("expected timestamps to be initialized")
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := &Session{Token: "t", UserID: 1, ExpiresAt: now.Add(time.Minute)}

	if s.Expired(now) {
		t.Error("session should be valid before expiry")
	}
	if !s.Expired(now.Add(time.Minute)) {
		t.Error("session should be expired at expiry")
	}
}
