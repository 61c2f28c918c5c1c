/*
 * Copyright 2018- The Pixie Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package controllers

import (
	"fmt"

	"github.com/numetrify/numetrify/src/numerics/bisection"
	"github.com/numetrify/numetrify/src/services/numerics/numericsenv"
	"github.com/numetrify/numetrify/src/shared/services/healthz"
)

// EngineCheck solves x^2 - 4 on [0, 3] and fails unless the run converges.
func EngineCheck(nmEnv numericsenv.NumericsEnv) healthz.Checker {
	return healthz.NamedCheck("engine", func() error {
		res, err := nmEnv.Engine().Run("x^2 - 4", 0, 3, bisection.Absolute, 4, 50)
		if err != nil {
			return err
		}
		if res.Status != bisection.Converged {
			return fmt.Errorf("engine self test ended with %s: %s", res.Status, res.Message)
		}
		return nil
	})
}

// ReadyStatus reports EngineSelfTestFailed while the engine check fails.
func ReadyStatus(nmEnv numericsenv.NumericsEnv) func() string {
	check := EngineCheck(nmEnv)
	return func() string {
		if err := check.Check(); err != nil {
			return "EngineSelfTestFailed"
		}
		return ""
	}
}
