package mailer

import "html/template"

// Templates are compiled in rather than read from disk so the binary stays
// self-contained.

var tmplJobSubmitted = template.Must(template.New("job-submitted").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; padding: 20px;">
  <h2>New job listing awaiting review</h2>
  <div style="background: #f3f4f6; padding: 15px; border-radius: 8px;">
    <p><strong>Job:</strong> {{.JobTitle}}</p>
    <p><strong>Company:</strong> {{.Company}}</p>
    <p><strong>Recruiter ID:</strong> {{.RecruiterID}}</p>
    <p><strong>Amount:</strong> {{.PaymentAmount}} VND</p>
    {{if .ProofURL}}<p><strong>Payment proof:</strong></p>
    <img src="{{.ProofURL}}" alt="Payment proof" style="max-width: 100%; border-radius: 8px;" />{{end}}
  </div>
  <p>Open the admin dashboard to verify the transfer and review the listing.</p>
</div>`))

var tmplJobResubmitted = template.Must(template.New("job-resubmitted").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; padding: 20px;">
  <p>The approved listing <strong>{{.JobTitle}}</strong> (ID: {{.JobID}}) was just edited by its recruiter.</p>
  <p>It has been moved back to pending approval. Please review the updated content.</p>
</div>`))

var tmplJobApproved = template.Must(template.New("job-approved").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; padding: 20px;">
  <h2 style="color: #10b981;">Congratulations!</h2>
  <p>Your job listing <strong>{{.JobTitle}}</strong> has been approved and its payment verified.</p>
  <p>The listing is now publicly visible on StudentWork.</p>
  <p>Good luck finding the right candidate!</p>
</div>`))

var tmplJobRejected = template.Must(template.New("job-rejected").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; padding: 20px;">
  <h2 style="color: #dc2626;">Listing rejected</h2>
  <p>Unfortunately your job listing <strong>{{.JobTitle}}</strong> was not approved.</p>
  <p><strong>Reason:</strong> {{.RejectionReason}}</p>
  <p>Please sign in, edit the listing and upload a new payment receipt to have it reviewed again.</p>
</div>`))

var tmplApplicationHired = template.Must(template.New("application-hired").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #10b981;">Congratulations, {{.StudentName}}!</h1>
  <p>You have been selected for the position:</p>
  <div style="background: #ecfdf5; border-left: 4px solid #10b981; padding: 20px; margin: 20px 0;">
    <h2 style="margin: 0 0 10px 0;">{{.JobTitle}}</h2>
    <p><strong>Company:</strong> {{.Company}}</p>
    {{if .Location}}<p><strong>Location:</strong> {{.Location}}</p>{{end}}
    {{if .Salary}}<p><strong>Salary:</strong> {{.Salary}}</p>{{end}}
  </div>
  <div style="background: #f3f4f6; padding: 20px; border-radius: 8px;">
    <h3 style="margin-top: 0;">Recruiter contact</h3>
    <p><strong>Name:</strong> {{.RecruiterName}}</p>
    <p><strong>Email:</strong> {{.RecruiterEmail}}</p>
    {{if .RecruiterPhone}}<p><strong>Phone:</strong> {{.RecruiterPhone}}</p>{{end}}
  </div>
  <p>The recruiter will contact you soon with your start date and onboarding details.</p>
  <p style="color: #9ca3af; font-size: 12px;">This is an automated message from StudentWork. Please do not reply.</p>
</div>`))

var tmplApplicationRejected = template.Must(template.New("application-rejected").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Hello {{.StudentName}},</h2>
  <p>Thank you for applying to <strong>{{.JobTitle}}</strong> at <strong>{{.Company}}</strong>.</p>
  <p>After careful consideration we are sorry to let you know that another candidate was selected for this position.</p>
  <p>We were impressed by your profile and hope to see you apply again in the future.</p>
  <p style="color: #9ca3af; font-size: 12px;">This is an automated message from StudentWork. Please do not reply.</p>
</div>`))

var tmplResetPassword = template.Must(template.New("reset-password").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; padding: 20px;">
  <h1>Password reset request</h1>
  <p>You are receiving this email because a password reset was requested for your account.</p>
  <p>Click the link below to choose a new password:</p>
  <p><a href="{{.Link}}" clicktracking=off>{{.Link}}</a></p>
  <p>The link expires in 10 minutes. If you did not request this, you can safely ignore this email.</p>
</div>`))
