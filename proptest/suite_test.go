package proptest

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProptest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "wavefd property suite")
}
