// Package intent normalizes infrastructure intents and extracts them from
// free-text descriptions.
package intent

import "github.com/autoinfra/autoinfra/pkg/api"

// ApplyDefaults fills every missing Intent field with its documented
// default. It only adds; a field the extractor explicitly set is never
// overwritten. After this pass no transformer can observe an absent field.
func ApplyDefaults(in api.Intent) api.Intent {
	if in.Cloud == "" {
		in.Cloud = "aws"
	}
	if in.App == "" {
		in.App = "other"
	}
	if in.Database == "" {
		in.Database = "none"
	}
	if in.Architecture == "" {
		in.Architecture = "2-tier"
	}
	if in.Availability == "" {
		in.Availability = "standard"
	}
	if in.Security == nil {
		in.Security = []string{"private_vpc", "security_groups"}
	}
	if in.Region == "" {
		in.Region = "us-east-1"
	}
	if in.InstanceType == "" {
		in.InstanceType = "t2.micro"
	}
	if in.AppCount < 1 {
		in.AppCount = 1
	}
	if in.DatabaseType == "" {
		in.DatabaseType = "ec2"
	}
	return in
}
