package swagger

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

var _ = Describe("LoadSpec", func() {
	It("should load and validate the bundled OpenAPI document", func() {
		doc, err := LoadSpec(context.Background(), "../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Info.Title).To(Equal("HR Management API"))
		Expect(doc.Paths.Find("/teams/assign")).NotTo(BeNil())
	})

	It("should fail for a missing file", func() {
		_, err := LoadSpec(context.Background(), "does-not-exist.yml")
		Expect(err).To(HaveOccurred())
	})
})
