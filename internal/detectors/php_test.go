package detectors

import "testing"

func TestPHPMysqli(t *testing.T) {
	data := []byte(`$conn = mysqli_connect("localhost", "root", "pw", "app");`)
	fs := PHP("db.php", data)
	if len(fs) != 1 || fs[0].Provider != "mysql" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
}

func TestPHPPDOProvider(t *testing.T) {
	data := []byte(`$pdo = new PDO('pgsql:host=localhost;dbname=app', $u, $p);`)
	fs := PHP("db.php", data)
	if len(fs) != 1 || fs[0].Provider != "pgsql" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
}

func TestPHPEloquent(t *testing.T) {
	data := []byte("class User extends Model {\n}\n")
	fs := PHP("app/User.php", data)
	if len(fs) != 1 || fs[0].Framework != "eloquent" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
}
