package detectors

import "testing"

func TestJavaJPAEntity(t *testing.T) {
	data := []byte("@Entity\npublic class User {\n}\n")
	fs := JavaJPA("User.java", data)
	if len(fs) != 1 || fs[0].Framework != "jpa" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
}

func TestRubyActiveRecord(t *testing.T) {
	data := []byte("class User < ApplicationRecord\nend\n")
	fs := RubyActiveRecord("app/models/user.rb", data)
	if len(fs) != 1 || fs[0].Framework != "active_record" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
}
