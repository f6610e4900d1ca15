package manifest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gense-cli/gense/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProbe(t *testing.T) {
	Convey("Probe", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/ok":
				w.WriteHeader(http.StatusOK)
			case "/no-head":
				if r.Method == http.MethodHead {
					w.WriteHeader(http.StatusMethodNotAllowed)
					return
				}
				w.WriteHeader(http.StatusPartialContent)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		probe := &Probe{http: server.Client()}

		Convey("A reachable url is alive", func() {
			So(probe.Alive(&source.Format{URL: server.URL + "/ok", ID: "Download"}), ShouldBeTrue)
		})

		Convey("HEAD rejection falls back to a ranged GET", func() {
			So(probe.Alive(&source.Format{URL: server.URL + "/no-head", ID: "Download"}), ShouldBeTrue)
		})

		Convey("A missing url is dead", func() {
			So(probe.Alive(&source.Format{URL: server.URL + "/gone", ID: "Download"}), ShouldBeFalse)
		})
	})
}
