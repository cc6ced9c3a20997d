package application

// Action names a busy flag exposed by NotesManager.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) Valid() bool {
	switch a {
	case ActionList, ActionCreate, ActionUpdate, ActionDelete:
		return true
	default:
		return false
	}
}

// Operation names used in OperationError.Op.
const (
	OpListNotes      = "list notes"
	OpCreateNote     = "create note"
	OpUpdateNote     = "update note"
	OpDeleteNote     = "delete note"
	OpLogin          = "login"
	OpLogout         = "logout"
	OpRegister       = "register"
	OpForgotPassword = "forgot password"
	OpSendResetLink  = "send reset link"
	OpResetPassword  = "reset password"
	OpUpdateProfile  = "update profile"
	OpShowSettings   = "show settings"
	OpSetSetting     = "set setting"
)

const (
	msgLoadNotesFailed   = "Failed to load notes."
	msgSaveNoteFailed    = "Failed to save note."
	msgDeleteNoteFailed  = "Failed to delete note."
	msgLoginFailed       = "Login failed"
	msgLogoutFailed      = "Logout failed"
	msgRegisterFailed    = "Registration failed"
	msgForgotFailed      = "Failed to send reset email"
	msgSendLinkFailed    = "Failed to send reset link"
	msgResetFailed       = "Password reset failed."
	msgProfileFailed     = "Failed to update profile"
	msgSettingsFailed    = "Failed to update settings"
	msgSettingsLoadError = "Failed to load settings"

	MsgNoteCreated    = "Note created successfully."
	MsgNoteUpdated    = "Note updated successfully."
	MsgNoteDeleted    = "Note deleted."
	MsgRegistered     = "Registered successfully"
	MsgResetEmailSent = "Password reset link sent to email"
	MsgResetLinkSent  = "Password reset link sent"
	MsgPasswordReset  = "Password reset successful."
	MsgProfileUpdated = "Profile updated successfully"

	msgCredentialsRequired = "Email and password are required."
	msgEmailRequired       = "Email is required."
	msgNoUserEmail         = "No email found for this user"
	msgPasswordEmpty       = "Password cannot be empty."
	msgResetTokenRequired  = "Reset token is required."
	msgProfileRequired     = "Name and email are required."
	msgNoteIDRequired      = "Note id is required."
	msgNotAuthenticated    = "You are not logged in."
	msgInFlight            = "Another request for this note is still running."
)
