package input

// AccountForm carries the profile fields of the settings page. The password
// sub-form is only considered when ChangePasswordToggle is "yes".
type AccountForm struct {
	Username string `form:"username"`
	Nick     string `form:"nick"`
	Timezone string `form:"timezone"`

	ChangePasswordToggle string `form:"change_password_toggle"`
	NewPassword1         string `form:"password-form-new_password1"`
	NewPassword2         string `form:"password-form-new_password2"`
}

// ChangePassword reports whether the password sub-form was submitted.
func (f *AccountForm) ChangePassword() bool {
	return f.ChangePasswordToggle == "yes"
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type TimezoneForm struct {
	Timezone string `form:"timezone"`
}
