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

// Package k8s provides Kubernetes integration for opsync.
//
// # Sub-packages
//
// client: Singleton Kubernetes client with automatic authentication
//
//	clientset, config, err := client.GetKubeClient()
//	if err != nil {
//	    return err
//	}
//
// secrets: Destination secret store with creation-time lookup and declarative
// server-side apply of materialized secrets
//
//	store := secrets.NewStore(clientset)
//	err := store.Apply(ctx, ns, name, data, nil)
//
// The client package uses sync.Once so a single Kubernetes client instance
// is shared across the application, and automatically detects whether it is
// running in-cluster (service account) or out-of-cluster (kubeconfig file).
package k8s
