package forms

import "github.com/goliatone/go-fastform/pkg/schema"

// LoginName is the registry name of the sample login form.
const LoginName = "login"

// Login returns the sample login form's FieldDescriptor when validate is
// false and its ValidationDescriptor when validate is true. The result is
// built fresh on every call.
func Login(validate bool) schema.Descriptor {
	if validate {
		return LoginValidations()
	}
	return LoginFields()
}

// LoginFields is the render-mode descriptor: a username text field, a
// password field and a submit control, in that order.
func LoginFields() schema.Fields {
	return schema.Fields{
		{
			Type:       schema.FieldTypeText,
			Name:       "username",
			Label:      "Username",
			ID:         "usernameID",
			Attributes: `placeholder="Enter your username"`,
		},
		{
			Type:       schema.FieldTypePassword,
			Name:       "password",
			Label:      "Password",
			ID:         "passwordID",
			Attributes: `placeholder="Enter your password"`,
		},
		{
			Type:  schema.FieldTypeSubmit,
			Name:  "submit",
			Value: "Login",
		},
	}
}

// LoginValidations is the validate-mode descriptor.
func LoginValidations() schema.Validations {
	return schema.Validations{
		{
			Field:   "username",
			Message: schema.Message{Label: "Username", Text: "Please enter your username"},
			Rules:   schema.Rules{{Name: schema.RuleRequired}, {Name: schema.RuleMin, Param: "3"}},
		},
		{
			Field:   "password",
			Message: schema.Message{Label: "Password", Text: "Please enter your password"},
			Rules:   schema.Rules{{Name: schema.RuleRequired}, {Name: schema.RuleHash}},
		},
	}
}

// LoginForm bundles both login descriptors.
func LoginForm() schema.Form {
	return schema.Form{
		Name:        LoginName,
		Fields:      LoginFields(),
		Validations: LoginValidations(),
	}
}
