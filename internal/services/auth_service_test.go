package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/auth"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

// fakeMailer records the last reset code dispatch instead of sending mail.
type fakeMailer struct {
	to   string
	code string
	sent int
}

func (m *fakeMailer) SendResetCode(to, code string) error {
	m.to = to
	m.code = code
	m.sent++
	return nil
}

func TestRegister(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})

		pair, err := svc.Register("Alice", "alice.register@test.com", "supersecret")
		testutil.AssertNoError(t, err)

		if pair.Token == "" || pair.RefreshToken == "" {
			t.Error("expected non-empty token pair")
		}
		if pair.User.Email != "alice.register@test.com" {
			t.Errorf("expected stored email, got %s", pair.User.Email)
		}
		if pair.User.Password == "supersecret" {
			t.Error("expected password to be hashed, found plaintext")
		}
		if bcrypt.CompareHashAndPassword([]byte(pair.User.Password), []byte("supersecret")) != nil {
			t.Error("expected stored hash to verify against the plaintext password")
		}
	})

	t.Run("email_lowercased", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})

		pair, err := svc.Register("Bob", "Bob.Mixed@Test.com", "supersecret")
		testutil.AssertNoError(t, err)
		if pair.User.Email != "bob.mixed@test.com" {
			t.Errorf("expected lowercased email, got %s", pair.User.Email)
		}

		// Login with the original casing must still work.
		_, err = svc.Login("BOB.MIXED@TEST.COM", "supersecret")
		testutil.AssertNoError(t, err)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})

		_, err := svc.Register("Alice", "dup.email@test.com", "supersecret")
		testutil.AssertNoError(t, err)
		_, err = svc.Register("Alice Again", "Dup.Email@test.com", "supersecret")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("invalid_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})

		_, err := svc.Register("Alice", "not-an-email", "supersecret")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("short_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})

		_, err := svc.Register("Alice", "short.pw@test.com", "short")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})

		_, err := svc.Register("", "no.name@test.com", "supersecret")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})
		user := testutil.CreateTestUser(t, db)

		pair, err := svc.Login(user.Email, "password123")
		testutil.AssertNoError(t, err)
		if pair.User.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, pair.User.ID)
		}
		if pair.Token == "" || pair.RefreshToken == "" {
			t.Error("expected non-empty token pair")
		}
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})

		_, err := svc.Login("nobody.login@test.com", "password123")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Login(user.Email, "wrongpassword")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("valid_rotates_stored_hash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})
		user := testutil.CreateTestUser(t, db)

		pair, err := svc.Login(user.Email, "password123")
		testutil.AssertNoError(t, err)

		refreshed, err := svc.RefreshToken(pair.RefreshToken)
		testutil.AssertNoError(t, err)
		if refreshed.Token == "" || refreshed.RefreshToken == "" {
			t.Error("expected non-empty rotated pair")
		}

		var stored models.User
		if err := db.Where("id = ?", user.ID).First(&stored).Error; err != nil {
			t.Fatalf("failed to reload user: %v", err)
		}
		if stored.RefreshTokenHash != auth.HashToken(refreshed.RefreshToken) {
			t.Error("expected stored hash to match the newly issued refresh token")
		}
	})

	t.Run("garbage_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})

		_, err := svc.RefreshToken("not-a-jwt")
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})

	t.Run("access_token_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})
		user := testutil.CreateTestUser(t, db)

		pair, err := svc.Login(user.Email, "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.RefreshToken(pair.Token)
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})

	t.Run("rotated_out_token_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})
		user := testutil.CreateTestUser(t, db)

		pair, err := svc.Login(user.Email, "password123")
		testutil.AssertNoError(t, err)

		// Another session rotates the pair; the stored hash no longer
		// matches the token we hold.
		err = db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("refresh_token_hash", auth.HashToken("some-other-token")).Error
		if err != nil {
			t.Fatalf("failed to overwrite hash: %v", err)
		}

		_, err = svc.RefreshToken(pair.RefreshToken)
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})
}

func TestForgotPassword(t *testing.T) {
	t.Run("known_email_dispatches_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		mailer := &fakeMailer{}
		svc := NewAuthService(db, mailer)
		user := testutil.CreateTestUser(t, db)

		ok, err := svc.ForgotPassword(user.Email)
		testutil.AssertNoError(t, err)
		if !ok {
			t.Error("expected true")
		}
		if mailer.sent != 1 {
			t.Fatalf("expected 1 mail dispatch, got %d", mailer.sent)
		}
		if mailer.to != user.Email {
			t.Errorf("expected mail to %s, got %s", user.Email, mailer.to)
		}
		if len(mailer.code) != 6 {
			t.Errorf("expected 6-digit code, got %q", mailer.code)
		}

		var stored models.User
		if err := db.Where("id = ?", user.ID).First(&stored).Error; err != nil {
			t.Fatalf("failed to reload user: %v", err)
		}
		if stored.ResetCode == nil || *stored.ResetCode != mailer.code {
			t.Error("expected persisted code to match the dispatched one")
		}
		if stored.ResetCodeExpiry == nil || !stored.ResetCodeExpiry.After(time.Now()) {
			t.Error("expected a future expiry")
		}
	})

	t.Run("unknown_email_reports_success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		mailer := &fakeMailer{}
		svc := NewAuthService(db, mailer)

		ok, err := svc.ForgotPassword("nobody.forgot@test.com")
		testutil.AssertNoError(t, err)
		if !ok {
			t.Error("expected true for unknown email")
		}
		if mailer.sent != 0 {
			t.Errorf("expected no mail dispatch, got %d", mailer.sent)
		}
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		mailer := &fakeMailer{}
		svc := NewAuthService(db, mailer)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ForgotPassword(user.Email)
		testutil.AssertNoError(t, err)

		ok, err := svc.ResetPassword(user.Email, mailer.code, "newpassword", "newpassword")
		testutil.AssertNoError(t, err)
		if !ok {
			t.Error("expected true")
		}

		_, err = svc.Login(user.Email, "newpassword")
		testutil.AssertNoError(t, err)

		// The code is single-use.
		_, err = svc.ResetPassword(user.Email, mailer.code, "anotherpassword", "anotherpassword")
		testutil.AssertAppError(t, err, "INVALID_RESET_CODE")
	})

	t.Run("wrong_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		mailer := &fakeMailer{}
		svc := NewAuthService(db, mailer)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ForgotPassword(user.Email)
		testutil.AssertNoError(t, err)

		_, err = svc.ResetPassword(user.Email, "000000", "newpassword", "newpassword")
		testutil.AssertAppError(t, err, "INVALID_RESET_CODE")
	})

	t.Run("expired_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		mailer := &fakeMailer{}
		svc := NewAuthService(db, mailer)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ForgotPassword(user.Email)
		testutil.AssertNoError(t, err)

		past := time.Now().Add(-time.Minute)
		err = db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("reset_code_expiry", past).Error
		if err != nil {
			t.Fatalf("failed to expire code: %v", err)
		}

		_, err = svc.ResetPassword(user.Email, mailer.code, "newpassword", "newpassword")
		testutil.AssertAppError(t, err, "INVALID_RESET_CODE")
	})

	t.Run("confirmation_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		mailer := &fakeMailer{}
		svc := NewAuthService(db, mailer)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ForgotPassword(user.Email)
		testutil.AssertNoError(t, err)

		_, err = svc.ResetPassword(user.Email, mailer.code, "newpassword", "differentpassword")
		testutil.AssertAppError(t, err, "INVALID_RESET_CODE")
	})

	t.Run("no_pending_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, &fakeMailer{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ResetPassword(user.Email, "123456", "newpassword", "newpassword")
		testutil.AssertAppError(t, err, "INVALID_RESET_CODE")
	})

	t.Run("short_new_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		mailer := &fakeMailer{}
		svc := NewAuthService(db, mailer)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ForgotPassword(user.Email)
		testutil.AssertNoError(t, err)

		_, err = svc.ResetPassword(user.Email, mailer.code, "short", "short")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
