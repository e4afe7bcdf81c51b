package handlers

import (
	"log"
	"net/http"

	"server/auth"
	"server/config"
	"server/email"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

// These errors are API-facing, return tokens rather than english
const (
	pwShortError = "PW_TOO_SHORT_8_MIN"
	pwSimple     = "PW_TOO_SIMPLE"
	emailError   = "INVALID_EMAIL"
)

const minPasswordEntropyScore = 3

type UserCredentialsRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Name     *string `json:"name"`
}

// validatePassword applies the length + zxcvbn entropy gate. The email is
// an extra dictionary input so "my.name@x.com123" scores low.
func validatePassword(password, userEmail string) string {
	if len(password) < 8 {
		return pwShortError
	}
	if zxcvbn.PasswordStrength(password, []string{userEmail}).Score < minPasswordEntropyScore {
		return pwSimple
	}
	return ""
}

var emailer *email.Emailer

func InitEmailer() {
	emailer = email.Init()
}

func UserRegister(c *gin.Context) {
	req := UserCredentialsRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{emailError})
		return
	}
	if msg := validatePassword(req.Password, req.Email); msg != "" {
		c.JSON(http.StatusBadRequest, Response{msg})
		return
	}
	// Always report "registration accepted" from here on: a duplicate
	// email must look exactly like a success
	if _, err := models.UserCreate(req.Email, req.Password, req.Name); err != nil {
		log.Printf("Error inserting new user (%s): %v", req.Email, err)
	}
	c.JSON(http.StatusOK, gin.H{"email": req.Email})
}

func UserLogin(c *gin.Context) {
	req := UserCredentialsRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{"email and password are required"})
		return
	}
	user, found, err := models.UserByEmail(req.Email)
	if err != nil {
		serverError(c, "login lookup", err)
		return
	}
	if !found {
		// Burn a hash on unknown emails too, so response timing doesn't
		// reveal which addresses are registered
		_, _ = bcrypt.GenerateFromPassword([]byte(req.Password), 10)
		c.JSON(http.StatusUnauthorized, Response{"username or password is invalid"})
		return
	}
	if !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, Response{"username or password is invalid"})
		return
	}
	session := auth.LoadSession(c)
	session.LoginUser(&user)
	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "email": user.Email, "name": name})
}

func UserLogout(c *gin.Context, user *models.User) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}

func UserGetStatus(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{
		"error":      "",
		"email":      user.Email,
		"subscriber": user.IsSubscriber(),
	})
}

type PasswordResetStartRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetStart emails a reset token. The response is the same
// whether or not the address is registered.
func PasswordResetStart(c *gin.Context) {
	req := PasswordResetStartRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{emailError})
		return
	}
	user, found, err := models.UserByEmail(req.Email)
	if err != nil {
		serverError(c, "password reset lookup", err)
		return
	}
	if found {
		reset, err := models.PasswordResetCreate(&user)
		if err != nil {
			serverError(c, "password reset create", err)
			return
		}
		body := "Your password reset link is " + config.APP_URL + "/reset/" + reset.UUID
		if err := emailer.SendMessage(user.Email, "Password reset", body); err != nil {
			serverError(c, "password reset email", err)
			return
		}
	}
	c.JSON(http.StatusOK, OKResponse)
}

// PasswordResetComplete consumes the emailed token. A wrong email, wrong
// token or already-used token all produce the same rejection.
func PasswordResetComplete(c *gin.Context) {
	token := c.Param("token")
	req := UserCredentialsRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{emailError})
		return
	}
	if msg := validatePassword(req.Password, req.Email); msg != "" {
		c.JSON(http.StatusBadRequest, Response{msg})
		return
	}
	done, err := models.CompletePasswordReset(req.Email, token, req.Password)
	if err != nil {
		serverError(c, "password reset complete", err)
		return
	}
	if !done {
		// Deliberately don't say why
		c.JSON(http.StatusBadRequest, Response{"reset rejected"})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
