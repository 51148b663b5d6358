// Copyright (c) 2025, the opsync authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/opskit/opsync/pkg/defaults"
	"github.com/opskit/opsync/pkg/k8s/client"
)

// ConfigMapURIScheme prefixes ConfigMap output destinations.
const ConfigMapURIScheme = "cm://"

// ConfigMapWriter writes a serialized report into a Kubernetes ConfigMap,
// creating it if absent and replacing its content if present.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
}

// NewConfigMapWriter creates a ConfigMapWriter for the given destination.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    format,
	}
}

// Serialize writes v into the ConfigMap with keys:
//   - report.{json|yaml|txt}: the serialized content
//   - format: the format used
//   - timestamp: RFC 3339 write time
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs, _, err := client.GetKubeClient()
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	content, err := Marshal(w.format, v)
	if err != nil {
		return err
	}

	extension := string(w.format)
	if w.format == FormatTable {
		extension = "txt"
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/managed-by": "opsync",
		}).
		WithData(map[string]string{
			"report." + extension: string(content),
			"format":              string(w.format),
			"timestamp":           time.Now().UTC().Format(time.RFC3339),
		})

	slog.Info("writing report ConfigMap",
		"namespace", w.namespace, "name", w.name, "format", w.format)

	_, err = cs.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		cm,
		metav1.ApplyOptions{
			FieldManager: "opsync",
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap: %w", err)
	}
	return nil
}

// Close is a no-op; ConfigMapWriter holds no resources.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// ParseConfigMapURI splits a cm://namespace/name URI into its components.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" || name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace and name are required, got %s", uri)
	}
	return namespace, name, nil
}
