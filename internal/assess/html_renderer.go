package assess

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/kjourdan1/egressctl/templates"
)

// htmlData is the single data contract between the assessment and the HTML
// template. Custom templates (config: reportTemplate) see the same fields.
type htmlData struct {
	GeneratedDate string
	ToolVersion   string
	Totals        Totals
	Assessment    *Assessment
	Subscriptions []subscriptionRow
}

type subscriptionRow struct {
	Sub    *Subscription
	Totals Totals
}

// RenderHTML renders the report with the embedded template.
func RenderHTML(w io.Writer, a *Assessment, toolVersion string) error {
	content, err := templates.FS.ReadFile("report.html.tmpl")
	if err != nil {
		return fmt.Errorf("reading embedded report template: %w", err)
	}
	return RenderHTMLTemplate(w, a, toolVersion, string(content))
}

// RenderHTMLTemplate renders the report with caller-supplied template text.
// There is exactly one rendering path; a missing custom template is the
// caller's configuration error, not a trigger for a fallback generator.
func RenderHTMLTemplate(w io.Writer, a *Assessment, toolVersion, templateText string) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(templateText)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	data := htmlData{
		GeneratedDate: a.GeneratedAt.Format("January 2, 2006 at 3:04 PM"),
		ToolVersion:   toolVersion,
		Totals:        Summarize(a),
		Assessment:    a,
	}
	for _, sub := range a.Subscriptions {
		data.Subscriptions = append(data.Subscriptions, subscriptionRow{
			Sub:    sub,
			Totals: SummarizeSubscription(sub),
		})
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report template: %w", err)
	}
	return nil
}

// StatusClass returns the CSS badge class for a subnet verdict.
func (s *Subnet) StatusClass() string {
	switch s.Classification {
	case AffectedDefaultEgress:
		return "status-affected-default"
	case AffectedMixedMode:
		return "status-affected-mixed"
	case NotAffected:
		return "status-not-affected"
	default:
		return "status-unknown"
	}
}

// Remediation returns the suggested action for a subnet verdict.
func (s *Subnet) Remediation() string {
	switch s.Classification {
	case AffectedDefaultEgress:
		return "Implement NAT Gateway or UDR with controlled egress"
	case AffectedMixedMode:
		return "Review mixed-mode configuration and standardize egress method"
	case NotAffected:
		return "No action needed"
	default:
		return "Review configuration"
	}
}

// StatusClass returns the CSS badge class for a VNet verdict.
func (v *VNet) StatusClass() string {
	switch v.Classification {
	case VNetAffectedInsecure:
		return "status-affected-insecure"
	case VNetNotAffectedSecure:
		return "status-not-affected-secure"
	case VNetNotAffectedInsecure:
		return "status-not-affected-insecure"
	default:
		return "status-unknown"
	}
}

// EgressMechanisms lists the distinct egress mechanisms seen across a VNet's
// subnets, sorted for stable rendering.
func (v *VNet) EgressMechanisms() string {
	set := map[string]bool{}
	for _, s := range v.Subnets {
		switch s.ReasonCode {
		case ReasonNATGateway:
			set["NAT Gateway"] = true
		case ReasonDefaultRoute:
			set["UDR with Default Route"] = true
		case ReasonPublicSubnet:
			set["Public Subnet"] = true
		case ReasonDefaultEgress:
			set["Default Egress"] = true
		case ReasonMixedMode:
			set["Mixed Mode"] = true
		case ReasonNoWorkloads:
			set["Empty Subnet"] = true
		}
	}
	if len(set) == 0 {
		return "None"
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

// Workloads counts NICs across all subnets of the VNet.
func (v *VNet) Workloads() int {
	total := 0
	for _, s := range v.Subnets {
		total += s.NICCount
	}
	return total
}

// AffectedSubnets counts subnets with an affected verdict.
func (v *VNet) AffectedSubnets() int {
	count := 0
	for _, s := range v.Subnets {
		if s.Classification.Affected() {
			count++
		}
	}
	return count
}
